package slack

import (
	"context"
	"fmt"
	"log"

	"threadscan/clients"
	"threadscan/core"
	"threadscan/models"
	"threadscan/services/analyzer"
	"threadscan/services/reporter"
)

const mentionReplyText = "👋 I'm running! Use the 'Extract Issues from Thread' shortcut on any message."

// SlackUseCase orchestrates one thread analysis per triggering event. Each
// invocation is an independent unit of work: it owns its own status message
// and analysis result, and shares nothing with concurrent invocations beyond
// the immutable keyword configuration and the Slack client.
type SlackUseCase struct {
	slackClient clients.SlackClient
	analyzer    *analyzer.Analyzer
	reporter    *reporter.Reporter
}

// NewSlackUseCase creates a new instance of SlackUseCase
func NewSlackUseCase(
	slackClient clients.SlackClient,
	analyzer *analyzer.Analyzer,
	reporter *reporter.Reporter,
) *SlackUseCase {
	return &SlackUseCase{
		slackClient: slackClient,
		analyzer:    analyzer,
		reporter:    reporter,
	}
}

// ProcessThreadShortcut handles the "extract thread issues" message shortcut:
// post the status notice, analyze the thread, deliver the report. Any fetch
// or delivery failure terminates the invocation and is surfaced to the
// requester privately; nothing is retried.
func (s *SlackUseCase) ProcessThreadShortcut(ctx context.Context, event models.SlackShortcutEvent) error {
	runID := core.NewID("run")
	threadRootTS := event.ThreadRootTS()
	log.Printf("📋 [%s] Starting thread analysis for thread %s in channel %s (requested by %s)",
		runID, threadRootTS, event.ChannelID, event.UserID)

	status, err := s.reporter.PostStatus(ctx, event.ChannelID, threadRootTS)
	if err != nil {
		return s.notifyFailure(ctx, event, runID, err)
	}

	result, err := s.analyzer.Analyze(ctx, event.ChannelID, threadRootTS)
	if err != nil {
		return s.notifyFailure(ctx, event, runID, err)
	}

	if err := s.reporter.Deliver(ctx, event.ChannelID, threadRootTS, result, status); err != nil {
		return s.notifyFailure(ctx, event, runID, err)
	}

	log.Printf("📋 [%s] Completed successfully - reported %d flagged message(s)", runID, len(result))
	return nil
}

// ProcessAppMention answers a bot mention with a static capability reply.
// Mentions are never analyzed.
func (s *SlackUseCase) ProcessAppMention(ctx context.Context, event models.SlackAppMentionEvent) error {
	log.Printf("📋 Starting to process app mention by %s in channel %s", event.UserID, event.ChannelID)

	if _, err := s.slackClient.PostMessage(ctx, event.ChannelID, clients.SlackMessageParams{
		Text: mentionReplyText,
	}); err != nil {
		return fmt.Errorf("failed to send mention reply: %w", err)
	}

	log.Printf("📋 Completed successfully - replied to app mention in channel %s", event.ChannelID)
	return nil
}

// notifyFailure sends the error detail to the requester privately and returns
// the original cause so the caller sees the typed error.
func (s *SlackUseCase) notifyFailure(
	ctx context.Context,
	event models.SlackShortcutEvent,
	runID string,
	cause error,
) error {
	log.Printf("❌ [%s] Thread analysis failed: %v", runID, cause)

	notice := clients.SlackMessageParams{
		Text: fmt.Sprintf("❌ Error analyzing thread: %s", cause.Error()),
	}
	if err := s.slackClient.PostEphemeral(ctx, event.ChannelID, event.UserID, notice); err != nil {
		log.Printf("⚠️ [%s] Failed to send failure notice to user %s: %v", runID, event.UserID, err)
	}

	return cause
}
