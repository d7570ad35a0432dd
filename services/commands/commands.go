package commands

import (
	"context"
	"fmt"

	"github.com/samber/mo"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/koenrh/sentry/core"
	"github.com/koenrh/sentry/models"
	"github.com/koenrh/sentry/services"
	"github.com/koenrh/sentry/services/commands/messagebuilder"
	"github.com/koenrh/sentry/utils"
)

type CommandsService struct {
	identityLinksService services.IdentityLinksService
	logger               *zap.Logger
}

func NewCommandsService(identityLinksService services.IdentityLinksService, logger *zap.Logger) *CommandsService {
	return &CommandsService{
		identityLinksService: identityLinksService,
		logger:               logger,
	}
}

// ProcessCommand classifies the command token and builds the reply.
// Unknown tokens are not errors: they get the help text annotated with the token.
func (s *CommandsService) ProcessCommand(
	ctx context.Context,
	request models.CommandRequest,
) (*models.CommandResult, error) {
	token := utils.DetectCommand(request.Text).Token
	s.logger.Debug("📋 Starting to process command", zap.String("token", token))

	switch token {
	case "help", "":
		return helpResult(token), nil
	case "link":
		return s.processIdentityCommand(ctx, models.CommandKindLink, token, s.identityLinksService.LinkIdentity, request.Payload)
	case "unlink":
		return s.processIdentityCommand(ctx, models.CommandKindUnlink, token, s.identityLinksService.UnlinkIdentity, request.Payload)
	default:
		s.logger.Debug("📋 Completed successfully - unknown command answered with help", zap.String("token", token))
		return &models.CommandResult{
			Kind:  models.CommandKindUnknown,
			Token: token,
			Block: mo.Some(messagebuilder.BuildHelpBlock(mo.Some(token))),
		}, nil
	}
}

func (s *CommandsService) processIdentityCommand(
	ctx context.Context,
	kind models.CommandKind,
	token string,
	run func(context.Context, models.SlashCommandPayload) error,
	payload models.SlashCommandPayload,
) (*models.CommandResult, error) {
	result := &models.CommandResult{
		Kind:  kind,
		Token: token,
		Block: mo.None[*slack.SectionBlock](),
	}

	err := run(ctx, payload)
	switch {
	case err == nil:
		s.logger.Debug("📋 Completed successfully - processed identity command", zap.String("kind", string(kind)))
		return result, nil
	case core.IsNotImplementedError(err):
		s.logger.Debug("📋 Completed successfully - identity command is pending", zap.String("kind", string(kind)))
		result.Pending = true
		return result, nil
	default:
		s.logger.Error("❌ Failed to process identity command", zap.String("kind", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("failed to process %s command: %w", kind, err)
	}
}

func helpResult(token string) *models.CommandResult {
	return &models.CommandResult{
		Kind:  models.CommandKindHelp,
		Token: token,
		Block: mo.Some(messagebuilder.BuildHelpBlock(mo.None[string]())),
	}
}
