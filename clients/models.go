package clients

import "github.com/samber/mo"

// SlackAuthTestResponse represents the response from Slack's auth.test API
type SlackAuthTestResponse struct {
	UserID string
	TeamID string
}

// SlackMessage represents one message returned by conversations.replies
type SlackMessage struct {
	TS       string
	User     string
	Text     string
	ThreadTS string
}

// SlackConversationRepliesParameters represents parameters for fetching the
// replies of a thread. Limit bounds the page size; Slack may silently
// truncate the thread at that bound.
type SlackConversationRepliesParameters struct {
	ChannelID string
	ThreadTS  string
	Limit     int
}

// SlackMessageParams holds parameters for sending Slack messages
type SlackMessageParams struct {
	Text     string
	ThreadTS mo.Option[string]
}

// SlackPostMessageResponse represents the response from posting a message to Slack
type SlackPostMessageResponse struct {
	Channel   string
	Timestamp string
}

// SlackPermalinkParameters represents parameters for generating a Slack permalink
type SlackPermalinkParameters struct {
	Channel string
	TS      string
}
