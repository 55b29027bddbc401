package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"threadscan/clients"
	"threadscan/core"
	"threadscan/models"
	"threadscan/services/keywords"
	"threadscan/services/links"
	"threadscan/utils"
)

// Analyzer scans every reply of a thread for configured keywords and enriches
// the flagged messages with permalinks and display times.
type Analyzer struct {
	slackClient clients.SlackClient
	matcher     *keywords.Matcher
	resolver    *links.Resolver
	location    *time.Location
	pageLimit   int
}

// NewAnalyzer creates a new instance of Analyzer
func NewAnalyzer(
	slackClient clients.SlackClient,
	matcher *keywords.Matcher,
	resolver *links.Resolver,
	location *time.Location,
	pageLimit int,
) *Analyzer {
	utils.AssertInvariant(pageLimit > 0, "page limit must be positive")

	return &Analyzer{
		slackClient: slackClient,
		matcher:     matcher,
		resolver:    resolver,
		location:    location,
		pageLimit:   pageLimit,
	}
}

// Analyze fetches all replies of the thread and returns the messages that
// contain at least one configured keyword, in thread order. A failed fetch is
// fatal for the invocation and surfaces as *core.FetchError; per-message
// permalink failures are absorbed by the resolver and never interrupt the
// analysis.
func (a *Analyzer) Analyze(ctx context.Context, channelID, threadRootTS string) (models.AnalysisResult, error) {
	log.Printf("📋 Starting to analyze thread %s in channel %s", threadRootTS, channelID)

	messages, err := a.slackClient.GetConversationReplies(ctx, clients.SlackConversationRepliesParameters{
		ChannelID: channelID,
		ThreadTS:  threadRootTS,
		Limit:     a.pageLimit,
	})
	if err != nil {
		log.Printf("❌ Failed to fetch replies for thread %s in channel %s: %v", threadRootTS, channelID, err)
		return nil, &core.FetchError{Err: err}
	}

	// Slack truncates the thread silently at the page limit. A full page is
	// accepted as-is but flagged in the logs.
	if len(messages) >= a.pageLimit {
		log.Printf("⚠️ Thread %s returned %d replies at the page limit - results may be truncated",
			threadRootTS, len(messages))
	}

	result := models.AnalysisResult{}
	for _, message := range messages {
		matched := a.matcher.Match(message.Text)
		if len(matched) == 0 {
			continue
		}

		displayTime, err := utils.FormatSlackTimestamp(message.TS, a.location)
		if err != nil {
			return nil, fmt.Errorf("failed to format timestamp of message %s: %w", message.TS, err)
		}

		result = append(result, models.FlaggedMessage{
			Message: models.ThreadMessage{
				TS:       message.TS,
				User:     message.User,
				Text:     message.Text,
				ThreadTS: message.ThreadTS,
			},
			Keywords:    matched,
			DisplayTime: displayTime,
			Link:        a.resolver.Resolve(channelID, message.TS),
		})
	}

	log.Printf("📋 Completed successfully - analyzed thread %s: %d of %d message(s) flagged",
		threadRootTS, len(result), len(messages))
	return result, nil
}
