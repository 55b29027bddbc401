package slack

import (
	"context"

	"github.com/stretchr/testify/mock"

	"threadscan/models"
)

// MockSlackUseCase is a mock implementation of SlackUseCase
type MockSlackUseCase struct {
	mock.Mock
}

func (m *MockSlackUseCase) ProcessThreadShortcut(ctx context.Context, event models.SlackShortcutEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockSlackUseCase) ProcessAppMention(ctx context.Context, event models.SlackAppMentionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
