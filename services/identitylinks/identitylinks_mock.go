package identitylinks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/koenrh/sentry/models"
)

// MockIdentityLinksService is a mock implementation of the IdentityLinksService interface
type MockIdentityLinksService struct {
	mock.Mock
}

func (m *MockIdentityLinksService) LinkIdentity(ctx context.Context, payload models.SlashCommandPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockIdentityLinksService) UnlinkIdentity(ctx context.Context, payload models.SlashCommandPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
