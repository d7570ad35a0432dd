package services

import (
	"context"

	"github.com/koenrh/sentry/models"
)

// CommandsService defines the interface for slash command dispatch
type CommandsService interface {
	ProcessCommand(ctx context.Context, request models.CommandRequest) (*models.CommandResult, error)
}

// IdentityLinksService defines the interface for linking a Slack identity to a platform account.
// Implementations return core.ErrNotImplemented while the linking flow is pending.
type IdentityLinksService interface {
	LinkIdentity(ctx context.Context, payload models.SlashCommandPayload) error
	UnlinkIdentity(ctx context.Context, payload models.SlashCommandPayload) error
}
