package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackSignatureMiddleware rejects POST requests that are not signed with the app's signing secret
type SlackSignatureMiddleware struct {
	signingSecret string
	logger        *zap.Logger
}

// NewSlackSignatureMiddleware creates the middleware; an empty signing secret disables verification
func NewSlackSignatureMiddleware(signingSecret string, logger *zap.Logger) *SlackSignatureMiddleware {
	return &SlackSignatureMiddleware{
		signingSecret: signingSecret,
		logger:        logger,
	}
}

func (m *SlackSignatureMiddleware) Middleware(next http.Handler) http.Handler {
	if m.signingSecret == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		verifier, err := slack.NewSecretsVerifier(r.Header, m.signingSecret)
		if err != nil {
			m.logger.Warn("❌ Invalid Slack signature headers", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&verifier, io.TeeReader(r.Body, &buf)); err != nil {
			m.logger.Warn("❌ Failed to read request body", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if err := verifier.Ensure(); err != nil {
			m.logger.Warn("❌ Slack signature verification failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(&buf)
		next.ServeHTTP(w, r)
	})
}
