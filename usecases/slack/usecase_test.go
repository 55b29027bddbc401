package slack

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"threadscan/clients"
	slackclient "threadscan/clients/slack"
	"threadscan/core"
	"threadscan/models"
	"threadscan/services/analyzer"
	"threadscan/services/keywords"
	"threadscan/services/links"
	"threadscan/services/reporter"
)

// noopSleeper skips pacing delays in tests
type noopSleeper struct{}

func (noopSleeper) Sleep(ctx context.Context, d time.Duration) {}

// slackUseCaseTestFixture encapsulates test setup and mocks
type slackUseCaseTestFixture struct {
	useCase     *SlackUseCase
	slackClient *slackclient.MockSlackClient
	ctx         context.Context
}

func setupSlackUseCaseTest(t *testing.T) *slackUseCaseTestFixture {
	mockSlackClient := new(slackclient.MockSlackClient)

	matcher, err := keywords.NewMatcher([]string{"broken", "urgent"})
	require.NoError(t, err)

	threadAnalyzer := analyzer.NewAnalyzer(
		mockSlackClient,
		matcher,
		links.NewResolver(mockSlackClient),
		time.UTC,
		1000,
	)
	threadReporter := reporter.NewReporter(mockSlackClient, noopSleeper{}, time.Second, 10*time.Second)

	return &slackUseCaseTestFixture{
		useCase:     NewSlackUseCase(mockSlackClient, threadAnalyzer, threadReporter),
		slackClient: mockSlackClient,
		ctx:         context.Background(),
	}
}

func shortcutEvent() models.SlackShortcutEvent {
	return models.SlackShortcutEvent{
		CallbackID: "extract_thread_issues",
		ChannelID:  "C123",
		UserID:     "U999",
		TeamID:     "T1",
		MessageTS:  "1715002400.000100",
	}
}

func TestProcessThreadShortcut(t *testing.T) {
	t.Run("happy_path_posts_status_report_and_cleanup", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.Anything).
			Return(&clients.SlackPostMessageResponse{Channel: "C123", Timestamp: "1715002500.000100"}, nil)
		fixture.slackClient.On("GetConversationReplies", fixture.ctx, mock.Anything).
			Return([]clients.SlackMessage{
				{TS: "1715002400.000100", User: "U1", Text: "all good here"},
				{TS: "1715002460.000200", User: "U2", Text: "this is broken and urgent"},
			}, nil)
		fixture.slackClient.On("GetPermalink", mock.Anything).
			Return("https://acme.slack.com/archives/C123/p1715002460000200", nil)
		fixture.slackClient.On("UpdateMessage", fixture.ctx, "C123", "1715002500.000100", mock.Anything).
			Return(nil)
		fixture.slackClient.On("DeleteMessage", fixture.ctx, "C123", "1715002500.000100").
			Return(nil)

		err := fixture.useCase.ProcessThreadShortcut(fixture.ctx, shortcutEvent())

		require.NoError(t, err)
		// status + header + 1 item
		fixture.slackClient.AssertNumberOfCalls(t, "PostMessage", 3)
		fixture.slackClient.AssertNotCalled(t, "PostEphemeral", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetch_failure_notifies_requester_privately", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		// status message post succeeds
		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.Anything).
			Return(&clients.SlackPostMessageResponse{Channel: "C123", Timestamp: "1715002500.000100"}, nil).Once()
		fixture.slackClient.On("GetConversationReplies", fixture.ctx, mock.Anything).
			Return(nil, fmt.Errorf("thread_not_found"))
		fixture.slackClient.On("PostEphemeral", fixture.ctx, "C123", "U999", mock.MatchedBy(func(params clients.SlackMessageParams) bool {
			return params.ThreadTS.IsAbsent() && params.Text != ""
		})).Return(nil)

		err := fixture.useCase.ProcessThreadShortcut(fixture.ctx, shortcutEvent())

		var fetchErr *core.FetchError
		require.True(t, errors.As(err, &fetchErr))
		// only the status message was posted to the thread, no report
		fixture.slackClient.AssertNumberOfCalls(t, "PostMessage", 1)
		fixture.slackClient.AssertExpectations(t)
	})

	t.Run("uses_thread_root_when_shortcut_invoked_on_reply", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		event := shortcutEvent()
		event.MessageTS = "1715002460.000200"
		event.ThreadTS = mo.Some("1715002400.000100")

		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.MatchedBy(func(params clients.SlackMessageParams) bool {
			threadTS, ok := params.ThreadTS.Get()
			return ok && threadTS == "1715002400.000100"
		})).Return(&clients.SlackPostMessageResponse{Channel: "C123", Timestamp: "1715002500.000100"}, nil)
		fixture.slackClient.On("GetConversationReplies", fixture.ctx, clients.SlackConversationRepliesParameters{
			ChannelID: "C123",
			ThreadTS:  "1715002400.000100",
			Limit:     1000,
		}).Return([]clients.SlackMessage{}, nil)
		fixture.slackClient.On("UpdateMessage", fixture.ctx, "C123", "1715002500.000100", mock.Anything).
			Return(nil)
		fixture.slackClient.On("DeleteMessage", fixture.ctx, "C123", "1715002500.000100").
			Return(nil)

		err := fixture.useCase.ProcessThreadShortcut(fixture.ctx, event)

		require.NoError(t, err)
		fixture.slackClient.AssertExpectations(t)
	})

	t.Run("status_post_failure_terminates_before_analysis", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.Anything).
			Return(nil, fmt.Errorf("channel_not_found"))
		fixture.slackClient.On("PostEphemeral", fixture.ctx, "C123", "U999", mock.Anything).
			Return(nil)

		err := fixture.useCase.ProcessThreadShortcut(fixture.ctx, shortcutEvent())

		var deliveryErr *core.DeliveryError
		require.True(t, errors.As(err, &deliveryErr))
		fixture.slackClient.AssertNotCalled(t, "GetConversationReplies", mock.Anything, mock.Anything)
	})

	t.Run("failure_notice_failure_does_not_mask_cause", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.Anything).
			Return(&clients.SlackPostMessageResponse{Channel: "C123", Timestamp: "1715002500.000100"}, nil).Once()
		fixture.slackClient.On("GetConversationReplies", fixture.ctx, mock.Anything).
			Return(nil, fmt.Errorf("thread_not_found"))
		fixture.slackClient.On("PostEphemeral", fixture.ctx, "C123", "U999", mock.Anything).
			Return(fmt.Errorf("user_not_in_channel"))

		err := fixture.useCase.ProcessThreadShortcut(fixture.ctx, shortcutEvent())

		var fetchErr *core.FetchError
		require.True(t, errors.As(err, &fetchErr))
	})
}

func TestProcessAppMention(t *testing.T) {
	t.Run("replies_with_capability_description", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.MatchedBy(func(params clients.SlackMessageParams) bool {
			return params.Text == mentionReplyText && params.ThreadTS.IsAbsent()
		})).Return(&clients.SlackPostMessageResponse{Channel: "C123", Timestamp: "1715002600.000100"}, nil)

		err := fixture.useCase.ProcessAppMention(fixture.ctx, models.SlackAppMentionEvent{
			ChannelID: "C123",
			UserID:    "U999",
			TS:        "1715002400.000100",
		})

		require.NoError(t, err)
		fixture.slackClient.AssertExpectations(t)
	})

	t.Run("post_failure_propagates", func(t *testing.T) {
		fixture := setupSlackUseCaseTest(t)

		fixture.slackClient.On("PostMessage", fixture.ctx, "C123", mock.Anything).
			Return(nil, fmt.Errorf("channel_not_found"))

		err := fixture.useCase.ProcessAppMention(fixture.ctx, models.SlackAppMentionEvent{
			ChannelID: "C123",
			UserID:    "U999",
		})

		require.Error(t, err)
	})
}
