package slack

import (
	"context"

	"github.com/slack-go/slack"

	"threadscan/clients"
)

// SlackClient implements the clients.SlackClient interface using the slack-go/slack SDK
type SlackClient struct {
	*slack.Client
}

// NewSlackClient creates a new Slack client with the provided bot token
func NewSlackClient(authToken string) clients.SlackClient {
	return &SlackClient{
		Client: slack.New(authToken),
	}
}

// AuthTest verifies the bot token and returns information about the bot
func (c *SlackClient) AuthTest() (*clients.SlackAuthTestResponse, error) {
	response, err := c.Client.AuthTest()
	if err != nil {
		return nil, err
	}

	return &clients.SlackAuthTestResponse{
		UserID: response.UserID,
		TeamID: response.TeamID,
	}, nil
}

// GetConversationReplies fetches the replies of a thread, bounded by the
// page limit in params. Replies come back in chronological order.
func (c *SlackClient) GetConversationReplies(
	ctx context.Context,
	params clients.SlackConversationRepliesParameters,
) ([]clients.SlackMessage, error) {
	sdkParams := &slack.GetConversationRepliesParameters{
		ChannelID: params.ChannelID,
		Timestamp: params.ThreadTS,
		Limit:     params.Limit,
	}

	messages, _, _, err := c.Client.GetConversationRepliesContext(ctx, sdkParams)
	if err != nil {
		return nil, err
	}

	// Convert SDK messages to our custom message struct
	result := make([]clients.SlackMessage, 0, len(messages))
	for _, message := range messages {
		result = append(result, clients.SlackMessage{
			TS:       message.Timestamp,
			User:     message.User,
			Text:     message.Text,
			ThreadTS: message.ThreadTimestamp,
		})
	}

	return result, nil
}

// PostMessage sends a message to a Slack channel
func (c *SlackClient) PostMessage(
	ctx context.Context,
	channelID string,
	params clients.SlackMessageParams,
) (*clients.SlackPostMessageResponse, error) {
	channel, timestamp, err := c.Client.PostMessageContext(ctx, channelID, messageOptions(params)...)
	if err != nil {
		return nil, err
	}

	return &clients.SlackPostMessageResponse{
		Channel:   channel,
		Timestamp: timestamp,
	}, nil
}

// PostEphemeral sends a message visible only to the given user
func (c *SlackClient) PostEphemeral(
	ctx context.Context,
	channelID, userID string,
	params clients.SlackMessageParams,
) error {
	_, err := c.Client.PostEphemeralContext(ctx, channelID, userID, messageOptions(params)...)
	return err
}

// UpdateMessage edits a previously posted message in place
func (c *SlackClient) UpdateMessage(ctx context.Context, channelID, messageTS, text string) error {
	_, _, _, err := c.Client.UpdateMessageContext(ctx, channelID, messageTS, slack.MsgOptionText(text, false))
	return err
}

// DeleteMessage removes a previously posted message
func (c *SlackClient) DeleteMessage(ctx context.Context, channelID, messageTS string) error {
	_, _, err := c.Client.DeleteMessageContext(ctx, channelID, messageTS)
	return err
}

// GetPermalink gets a permalink URL for a message
func (c *SlackClient) GetPermalink(params *clients.SlackPermalinkParameters) (string, error) {
	sdkParams := &slack.PermalinkParameters{
		Channel: params.Channel,
		Ts:      params.TS,
	}
	return c.Client.GetPermalink(sdkParams)
}

func messageOptions(params clients.SlackMessageParams) []slack.MsgOption {
	var sdkOptions []slack.MsgOption
	if params.Text != "" {
		sdkOptions = append(sdkOptions, slack.MsgOptionText(params.Text, false))
	}
	if threadTS, ok := params.ThreadTS.Get(); ok {
		sdkOptions = append(sdkOptions, slack.MsgOptionTS(threadTS))
	}
	return sdkOptions
}
