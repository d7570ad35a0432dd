package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	slackclient "github.com/koenrh/sentry/clients/slack"
)

const testWebhookURL = "https://hooks.slack.com/services/T000/B000/XXXX"

func setupErrorAlertMiddleware(webhookURL string) (*ErrorAlertMiddleware, *slackclient.MockSlackWebhookClient) {
	webhookClient := slackclient.NewMockSlackWebhookClient()
	m := NewErrorAlertMiddleware(SlackAlertConfig{
		WebhookURL:  webhookURL,
		Environment: "dev",
		AppName:     "sentry-slack",
		LogsURL:     "https://logs.example.com",
	}, webhookClient, zap.NewNop())
	return m, webhookClient
}

func TestErrorAlertMiddleware_HTTPMiddleware(t *testing.T) {
	t.Run("panic becomes a 500 and an alert", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
		handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/extensions/slack/commands/", nil))
		m.Stop()

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		posted := webhookClient.Posted()
		require.Len(t, posted, 1)
		assert.Equal(t, testWebhookURL, posted[0].URL)
		assert.Contains(t, posted[0].Message.Text, "HTTP POST /extensions/slack/commands/ (PANIC)")
		assert.Contains(t, posted[0].Message.Text, "boom")
		require.NotNil(t, posted[0].Message.Blocks)
		assert.Len(t, posted[0].Message.Blocks.BlockSet, 4)

		header, ok := posted[0].Message.Blocks.BlockSet[0].(*slack.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🚨 [dev] [sentry-slack] Error Alert", header.Text.Text)
	})

	t.Run("5xx response triggers an alert", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
		handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/extensions/slack/commands/", nil))
		m.Stop()

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		posted := webhookClient.Posted()
		require.Len(t, posted, 1)
		assert.Contains(t, posted[0].Message.Text, "responded with status 500")
	})

	t.Run("client errors do not alert", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
		handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		m.Stop()

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, webhookClient.Posted())
	})

	t.Run("no webhook configured sends nothing", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware("")
		handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		m.Stop()

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Empty(t, webhookClient.Posted())
	})
}

func TestErrorAlertMiddleware_AlertOnError_Dedup(t *testing.T) {
	m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.AlertOnError(errors.New("db down"), "Background task: sync")
	m.AlertOnError(errors.New("db down"), "Background task: sync")
	m.AlertOnError(errors.New("other failure"), "Background task: sync")

	now = now.Add(defaultAlertCooldown + time.Second)
	m.AlertOnError(errors.New("db down"), "Background task: sync")
	m.Stop()

	assert.Len(t, webhookClient.Posted(), 3)
}

func TestErrorAlertMiddleware_WrapBackgroundTask(t *testing.T) {
	t.Run("error is returned and alerted", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
		task := m.WrapBackgroundTask("serve", func() error { return errors.New("listen failed") })

		err := task()
		m.Stop()

		require.Error(t, err)
		posted := webhookClient.Posted()
		require.Len(t, posted, 1)
		assert.Contains(t, posted[0].Message.Text, "Background task: serve: listen failed")
	})

	t.Run("panic is recovered as an error", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
		task := m.WrapBackgroundTask("serve", func() error { panic("boom") })

		err := task()
		m.Stop()

		require.Error(t, err)
		assert.Len(t, webhookClient.Posted(), 1)
	})

	t.Run("success does not alert", func(t *testing.T) {
		m, webhookClient := setupErrorAlertMiddleware(testWebhookURL)
		task := m.WrapBackgroundTask("serve", func() error { return nil })

		require.NoError(t, task())
		m.Stop()

		assert.Empty(t, webhookClient.Posted())
	})
}
