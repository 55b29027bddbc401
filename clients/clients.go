package clients

import "context"

// SlackClient defines the Slack operations the analysis pipeline consumes
type SlackClient interface {
	AuthTest() (*SlackAuthTestResponse, error)
	GetConversationReplies(
		ctx context.Context,
		params SlackConversationRepliesParameters,
	) ([]SlackMessage, error)
	PostMessage(ctx context.Context, channelID string, params SlackMessageParams) (*SlackPostMessageResponse, error)
	PostEphemeral(ctx context.Context, channelID, userID string, params SlackMessageParams) error
	UpdateMessage(ctx context.Context, channelID, messageTS, text string) error
	DeleteMessage(ctx context.Context, channelID, messageTS string) error
	GetPermalink(params *SlackPermalinkParameters) (string, error)
}
