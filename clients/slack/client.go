package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/koenrh/sentry/clients"
)

const defaultWebhookTimeout = 10 * time.Second

// SlackWebhookClient implements the clients.SlackWebhookClient interface using the slack-go/slack SDK
type SlackWebhookClient struct {
	httpClient *http.Client
}

// NewSlackWebhookClient creates a webhook client; a nil httpClient gets a client with a default timeout
func NewSlackWebhookClient(httpClient *http.Client) clients.SlackWebhookClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultWebhookTimeout}
	}
	return &SlackWebhookClient{httpClient: httpClient}
}

// PostWebhook sends msg to the given incoming webhook URL
func (c *SlackWebhookClient) PostWebhook(ctx context.Context, webhookURL string, msg *slack.WebhookMessage) error {
	if err := slack.PostWebhookCustomHTTPContext(ctx, webhookURL, c.httpClient, msg); err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}
