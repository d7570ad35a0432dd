package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	slackclient "github.com/koenrh/sentry/clients/slack"
	"github.com/koenrh/sentry/config"
	"github.com/koenrh/sentry/core"
	"github.com/koenrh/sentry/handlers"
	"github.com/koenrh/sentry/middleware"
)

const testSigningSecret = "test_signing_secret"

func setupServer(t *testing.T, cfg *config.AppConfig) http.Handler {
	t.Helper()

	alertMiddleware := middleware.NewErrorAlertMiddleware(
		middleware.SlackAlertConfig{},
		slackclient.NewMockSlackWebhookClient(),
		zap.NewNop(),
	)
	t.Cleanup(alertMiddleware.Stop)

	return newHandler(cfg, alertMiddleware, zap.NewNop())
}

func signedCommandRequest(body string, timestamp int64) *http.Request {
	mac := hmac.New(sha256.New, []byte(testSigningSecret))
	mac.Write([]byte(fmt.Sprintf("v0:%d:%s", timestamp, body)))

	req := httptest.NewRequest(http.MethodPost, handlers.SlackCommandsPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func TestNewHandler_SignedCommands(t *testing.T) {
	server := setupServer(t, &config.AppConfig{
		SlackConfig: config.SlackConfig{SigningSecret: testSigningSecret},
	})

	t.Run("signed help request", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, signedCommandRequest("command=%2Fsentry&text=help", time.Now().Unix()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Available Commands:")
		assert.True(t, core.IsValidIDWithPrefix(rr.Header().Get(middleware.RequestIDHeader), "req"))
	})

	t.Run("signed link request is pending", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, signedCommandRequest("text=link", time.Now().Unix()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, `{"blocks":[{}]}`, rr.Body.String())
	})

	t.Run("unsigned request is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, handlers.SlackCommandsPath, strings.NewReader("text=help"))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("GET still answers 405", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, handlers.SlackCommandsPath, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestNewHandler_CORS(t *testing.T) {
	server := setupServer(t, &config.AppConfig{
		AllowOrigin: "https://ui.example.com",
		AppURL:      "https://sentry.example.com",
	})

	tests := []struct {
		name           string
		origin         string
		expectedOrigin string
	}{
		{name: "listed origin", origin: "https://ui.example.com", expectedOrigin: "https://ui.example.com"},
		{name: "app domain", origin: "https://sentry.example.com", expectedOrigin: "https://sentry.example.com"},
		{name: "unknown origin", origin: "https://evil.example.com", expectedOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/health", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rr := httptest.NewRecorder()

			server.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNewHandler_CORSGet(t *testing.T) {
	server := setupServer(t, &config.AppConfig{AllowOrigin: "https://ui.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	rr := httptest.NewRecorder()

	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://ui.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_CommandsPathIgnoresPreflight(t *testing.T) {
	server := setupServer(t, &config.AppConfig{
		AllowOrigin: "*",
		SlackConfig: config.SlackConfig{SigningSecret: testSigningSecret},
	})

	for _, origin := range []string{"https://evil.example.com", "https://ui.example.com"} {
		t.Run(origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, handlers.SlackCommandsPath, nil)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rr := httptest.NewRecorder()

			server.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Empty(t, rr.Body.String())
			assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRootCmd_HelpText(t *testing.T) {
	t.Run("plain help", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"help-text"})

		require.NoError(t, cmd.Execute())
		assert.True(t, strings.HasPrefix(out.String(), "Available Commands:\n"))
	})

	t.Run("unknown token", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"help-text", "--unknown", "invalid"})

		require.NoError(t, cmd.Execute())
		assert.True(t, strings.HasPrefix(out.String(), "Unknown command: `invalid`\n"))
	})
}
