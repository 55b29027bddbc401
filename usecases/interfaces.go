package usecases

import (
	"context"

	"threadscan/models"
)

// SlackUseCase defines the operations the Slack event bindings invoke
type SlackUseCase interface {
	ProcessThreadShortcut(ctx context.Context, event models.SlackShortcutEvent) error
	ProcessAppMention(ctx context.Context, event models.SlackAppMentionEvent) error
}
