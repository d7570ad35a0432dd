package slack

import (
	"context"
	"sync"

	"github.com/slack-go/slack"
)

// PostedWebhook records a single call to MockSlackWebhookClient.PostWebhook
type PostedWebhook struct {
	URL     string
	Message *slack.WebhookMessage
}

// MockSlackWebhookClient implements SlackWebhookClient interface for testing
type MockSlackWebhookClient struct {
	MockPostWebhook func(ctx context.Context, webhookURL string, msg *slack.WebhookMessage) error

	mu     sync.Mutex
	posted []PostedWebhook
}

// NewMockSlackWebhookClient creates a new mock Slack webhook client
func NewMockSlackWebhookClient() *MockSlackWebhookClient {
	return &MockSlackWebhookClient{}
}

// PostWebhook implements SlackWebhookClient interface for testing
func (m *MockSlackWebhookClient) PostWebhook(ctx context.Context, webhookURL string, msg *slack.WebhookMessage) error {
	m.mu.Lock()
	m.posted = append(m.posted, PostedWebhook{URL: webhookURL, Message: msg})
	m.mu.Unlock()

	if m.MockPostWebhook != nil {
		return m.MockPostWebhook(ctx, webhookURL, msg)
	}
	return nil
}

// Posted returns a snapshot of every webhook posted so far
func (m *MockSlackWebhookClient) Posted() []PostedWebhook {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PostedWebhook(nil), m.posted...)
}
