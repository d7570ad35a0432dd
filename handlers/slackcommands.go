package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/koenrh/sentry/appctx"
	"github.com/koenrh/sentry/services"
	slackutils "github.com/koenrh/sentry/utils/slack"
)

const SlackCommandsPath = "/extensions/slack/commands/"

// commandReply is the JSON body Slack renders in the channel.
// An entry is either a section block or an empty object.
type commandReply struct {
	Blocks []any `json:"blocks"`
}

type SlackCommandsHandler struct {
	commandsService services.CommandsService
	logger          *zap.Logger
}

func NewSlackCommandsHandler(commandsService services.CommandsService, logger *zap.Logger) *SlackCommandsHandler {
	return &SlackCommandsHandler{
		commandsService: commandsService,
		logger:          logger,
	}
}

func (h *SlackCommandsHandler) HandleSlackCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestID, _ := appctx.GetRequestID(r.Context())
	h.logger.Debug("⚡ Slack command received", zap.String("request_id", requestID), zap.String("remote_addr", r.RemoteAddr))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logInvalidPayload(r, requestID, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	request, err := slackutils.ParseCommandRequest(body)
	if err != nil {
		h.logInvalidPayload(r, requestID, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := h.commandsService.ProcessCommand(r.Context(), request)
	if err != nil {
		h.logger.Error("❌ Failed to process slash command", zap.String("request_id", requestID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	reply := commandReply{Blocks: []any{struct{}{}}}
	if block, ok := result.Block.Get(); ok {
		reply.Blocks = []any{block}
	}

	h.logger.Debug("✅ Slash command processed",
		zap.String("request_id", requestID),
		zap.String("kind", string(result.Kind)),
		zap.Bool("pending", result.Pending),
	)
	h.writeJSONResponse(w, http.StatusOK, reply)
}

func (h *SlackCommandsHandler) logInvalidPayload(r *http.Request, requestID string, err error) {
	h.logger.Info("slack.webhook.invalid-payload",
		zap.String("request_id", requestID),
		zap.String("remote_addr", r.RemoteAddr),
		zap.Error(err),
	)
}

func (h *SlackCommandsHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("❌ Failed to encode JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("❌ Failed to write JSON response", zap.Error(err))
	}
}

// SetupEndpoints registers the commands route for every method; the handler answers 405 itself.
func (h *SlackCommandsHandler) SetupEndpoints(router *mux.Router, middlewares ...mux.MiddlewareFunc) {
	h.logger.Info("🚀 Registering Slack commands endpoint", zap.String("path", SlackCommandsPath))
	router.Handle(SlackCommandsPath, chain(http.HandlerFunc(h.HandleSlackCommand), middlewares))
	h.logger.Info("✅ Slack commands endpoint registered successfully")
}
