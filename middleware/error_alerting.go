package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gammazero/workerpool"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/koenrh/sentry/clients"
)

const (
	defaultAlertCooldown = 10 * time.Minute
	alertWorkers         = 4
	alertSendTimeout     = 10 * time.Second
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	webhookClient clients.SlackWebhookClient
	logger        *zap.Logger
	pool          *workerpool.WorkerPool

	alertedErrors map[uint64]time.Time // message hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
	now           func() time.Time
}

func NewErrorAlertMiddleware(
	config SlackAlertConfig,
	webhookClient clients.SlackWebhookClient,
	logger *zap.Logger,
) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		webhookClient: webhookClient,
		logger:        logger,
		pool:          workerpool.New(alertWorkers),
		alertedErrors: make(map[uint64]time.Time),
		alertCooldown: defaultAlertCooldown,
		now:           time.Now,
	}
}

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.status = http.StatusOK
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

// HTTPMiddleware recovers panics as 500s and alerts on every 5xx response
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		alertContext := fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("❌ Recovered from panic", zap.String("context", alertContext), zap.Any("panic", rec))
				if !recorder.wroteHeader {
					recorder.WriteHeader(http.StatusInternalServerError)
				}
				m.AlertOnError(fmt.Errorf("PANIC - %v", rec), alertContext+" (PANIC)")
				return
			}

			if recorder.status >= http.StatusInternalServerError {
				m.AlertOnError(fmt.Errorf("responded with status %d", recorder.status), alertContext)
			}
		}()

		next.ServeHTTP(recorder, r)
	})
}

// WrapBackgroundTask alerts when task fails or panics
func (m *ErrorAlertMiddleware) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() (err error) {
		alertContext := fmt.Sprintf("Background task: %s", taskName)
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("❌ Recovered from panic", zap.String("context", alertContext), zap.Any("panic", rec))
				err = fmt.Errorf("panic in %s: %v", taskName, rec)
				m.AlertOnError(err, alertContext+" (PANIC)")
			}
		}()

		if err := task(); err != nil {
			m.AlertOnError(err, alertContext)
			return err
		}
		return nil
	}
}

// AlertOnError queues a Slack alert unless the same message was alerted within the cooldown
func (m *ErrorAlertMiddleware) AlertOnError(err error, alertContext string) {
	if m.config.WebhookURL == "" {
		return
	}

	errorMsg := fmt.Sprintf("%s: %v", alertContext, err)
	hash := xxhash.Sum64String(errorMsg)

	m.mutex.Lock()
	now := m.now()
	if lastAlert, exists := m.alertedErrors[hash]; exists && now.Sub(lastAlert) < m.alertCooldown {
		m.mutex.Unlock()
		m.logger.Debug("📋 Skipping duplicate alert", zap.String("context", alertContext))
		return
	}
	m.alertedErrors[hash] = now
	m.mutex.Unlock()

	msg := m.buildAlertMessage(errorMsg, alertContext)
	m.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertSendTimeout)
		defer cancel()

		if err := m.webhookClient.PostWebhook(ctx, m.config.WebhookURL, msg); err != nil {
			m.logger.Error("❌ Failed to send Slack alert", zap.Error(err))
		}
	})
}

// Stop waits for queued alerts to be sent
func (m *ErrorAlertMiddleware) Stop() {
	m.pool.StopWait()
}

func (m *ErrorAlertMiddleware) buildAlertMessage(errorMsg, alertContext string) *slack.WebhookMessage {
	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	header := slack.NewHeaderBlock(slack.NewTextBlockObject(
		slack.PlainTextType,
		fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName),
		true,
		false,
	))
	details := slack.NewSectionBlock(nil, []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", alertContext), false, false),
	}, nil)
	errorSection := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false),
		nil,
		nil,
	)

	blocks := []slack.Block{header, details, errorSection}
	if m.config.LogsURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL), false, false),
			nil,
			nil,
		))
	}

	return &slack.WebhookMessage{
		Text:   errorMsg,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}
