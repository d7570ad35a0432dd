package clients

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackWebhookClient posts messages to Slack incoming webhooks
type SlackWebhookClient interface {
	PostWebhook(ctx context.Context, webhookURL string, msg *slack.WebhookMessage) error
}
