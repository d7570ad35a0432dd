package identitylinks

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/koenrh/sentry/core"
	"github.com/koenrh/sentry/models"
)

// PendingIdentityLinksService is the identity-links service used until account
// linking is built. Every operation reports core.ErrNotImplemented.
type PendingIdentityLinksService struct {
	logger *zap.Logger
}

// NewPendingIdentityLinksService creates the placeholder identity-links service
func NewPendingIdentityLinksService(logger *zap.Logger) *PendingIdentityLinksService {
	return &PendingIdentityLinksService{logger: logger}
}

func (s *PendingIdentityLinksService) LinkIdentity(ctx context.Context, payload models.SlashCommandPayload) error {
	s.logger.Debug("🔗 Identity linking requested but not available yet",
		zap.String("team_id", payload.TeamID),
		zap.String("user_id", payload.UserID))
	return fmt.Errorf("link identity: %w", core.ErrNotImplemented)
}

func (s *PendingIdentityLinksService) UnlinkIdentity(ctx context.Context, payload models.SlashCommandPayload) error {
	s.logger.Debug("🔗 Identity unlinking requested but not available yet",
		zap.String("team_id", payload.TeamID),
		zap.String("user_id", payload.UserID))
	return fmt.Errorf("unlink identity: %w", core.ErrNotImplemented)
}
