package reporter

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/mo"

	"threadscan/clients"
	"threadscan/core"
	"threadscan/models"
	"threadscan/utils"
)

const (
	statusAnalyzingText = "🔍 Analyzing thread for issues... This may take a moment."
	statusCompleteText  = "✅ Analysis complete."
	noIssuesText        = "✅ No issues found! No messages contained the tracked keywords."
)

// Reporter sequences the outbound reply messages for one analysis run and
// manages the in-thread status message lifecycle. All posts happen in strict
// sequence - thread ordering and the rate limit both require it.
type Reporter struct {
	slackClient  clients.SlackClient
	sleeper      Sleeper
	postInterval time.Duration
	cleanupDelay time.Duration
}

// StatusMessage is the visible "analyzing" placeholder posted into the
// thread. Each analysis run owns exactly one; it is updated in place and
// deleted after a grace period.
type StatusMessage struct {
	ChannelID string
	TS        string
}

// NewReporter creates a new instance of Reporter
func NewReporter(
	slackClient clients.SlackClient,
	sleeper Sleeper,
	postInterval time.Duration,
	cleanupDelay time.Duration,
) *Reporter {
	utils.AssertInvariant(postInterval >= 0, "post interval must not be negative")
	utils.AssertInvariant(cleanupDelay >= 0, "cleanup delay must not be negative")

	return &Reporter{
		slackClient:  slackClient,
		sleeper:      sleeper,
		postInterval: postInterval,
		cleanupDelay: cleanupDelay,
	}
}

// PostStatus posts the visible "analyzing" notice into the thread before
// analysis begins.
func (r *Reporter) PostStatus(ctx context.Context, channelID, threadRootTS string) (*StatusMessage, error) {
	response, err := r.slackClient.PostMessage(ctx, channelID, clients.SlackMessageParams{
		Text:     statusAnalyzingText,
		ThreadTS: mo.Some(threadRootTS),
	})
	if err != nil {
		return nil, &core.DeliveryError{Err: fmt.Errorf("failed to post status message: %w", err)}
	}

	log.Printf("📨 Posted status message %s to thread %s", response.Timestamp, threadRootTS)
	return &StatusMessage{ChannelID: channelID, TS: response.Timestamp}, nil
}

// Deliver posts the analysis outcome into the thread: either a single "no
// issues" message, or a header followed by one message per flagged message in
// thread order, paced by the configured interval. Afterwards the status
// message (if any) is cleaned up best-effort. A failed post surfaces as
// *core.DeliveryError and abandons the remaining posts; messages already sent
// are not retracted.
func (r *Reporter) Deliver(
	ctx context.Context,
	channelID, threadRootTS string,
	result models.AnalysisResult,
	status *StatusMessage,
) error {
	if len(result) == 0 {
		if err := r.postToThread(ctx, channelID, threadRootTS, noIssuesText); err != nil {
			return err
		}
		log.Printf("📋 Completed successfully - no issues found in thread %s", threadRootTS)
		r.cleanupStatus(ctx, status)
		return nil
	}

	if err := r.postToThread(ctx, channelID, threadRootTS, formatHeader(len(result))); err != nil {
		return err
	}

	for i, flagged := range result {
		r.sleeper.Sleep(ctx, r.postInterval)
		if err := r.postToThread(ctx, channelID, threadRootTS, formatItem(i+1, flagged)); err != nil {
			return err
		}
	}

	log.Printf("📋 Completed successfully - posted %d flagged message(s) to thread %s", len(result), threadRootTS)
	r.cleanupStatus(ctx, status)
	return nil
}

func (r *Reporter) postToThread(ctx context.Context, channelID, threadRootTS, text string) error {
	_, err := r.slackClient.PostMessage(ctx, channelID, clients.SlackMessageParams{
		Text:     text,
		ThreadTS: mo.Some(threadRootTS),
	})
	if err != nil {
		return &core.DeliveryError{Err: err}
	}
	return nil
}

// cleanupStatus updates the status message to its terminal text, waits the
// grace period and deletes it. Failures here are logged, never escalated -
// the report itself has already been delivered.
func (r *Reporter) cleanupStatus(ctx context.Context, status *StatusMessage) {
	if status == nil {
		return
	}

	if err := r.slackClient.UpdateMessage(ctx, status.ChannelID, status.TS, statusCompleteText); err != nil {
		cleanupErr := &core.CleanupError{Err: err}
		log.Printf("⚠️ Failed to update status message %s: %v", status.TS, cleanupErr)
		return
	}

	r.sleeper.Sleep(ctx, r.cleanupDelay)

	if err := r.slackClient.DeleteMessage(ctx, status.ChannelID, status.TS); err != nil {
		cleanupErr := &core.CleanupError{Err: err}
		log.Printf("⚠️ Failed to delete status message %s: %v", status.TS, cleanupErr)
		return
	}

	log.Printf("🗑️ Deleted status message %s", status.TS)
}

func formatHeader(count int) string {
	return fmt.Sprintf("🧵 *Thread Analysis Results*\n"+
		"Found *%d* message(s) with issue keywords.\n"+
		"_Keyword matches may be noisy or duplicated - review before acting._",
		count)
}

func formatItem(index int, flagged models.FlaggedMessage) string {
	quoted := make([]string, len(flagged.Keywords))
	for i, keyword := range flagged.Keywords {
		quoted[i] = fmt.Sprintf("%q", keyword)
	}

	return fmt.Sprintf("*MESSAGE #%d* - (%s)\n"+
		"Keywords: %s\n"+
		"🔗 <%s|View message>\n\n"+
		"%q",
		index, flagged.DisplayTime, strings.Join(quoted, ", "), flagged.Link, flagged.Message.Text)
}
