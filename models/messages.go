package models

import "github.com/samber/mo"

// ThreadMessage is one message inside a Slack thread. The TS doubles as the
// message's unique key within the thread.
type ThreadMessage struct {
	TS       string
	User     string
	Text     string
	ThreadTS string
}

// FlaggedMessage is a thread message that matched at least one configured
// keyword, enriched with a display time and a permalink. In-memory only -
// discarded once the reply has been delivered.
type FlaggedMessage struct {
	Message     ThreadMessage
	Keywords    []string
	DisplayTime string
	Link        string
}

// AnalysisResult is the ordered list of flagged messages for one thread
// analysis. An empty result is valid and means "no issues found".
type AnalysisResult []FlaggedMessage

// SlackShortcutEvent carries the fields of a message-action shortcut
// invocation that the analysis pipeline needs.
type SlackShortcutEvent struct {
	CallbackID string
	ChannelID  string
	UserID     string
	TeamID     string
	MessageTS  string
	ThreadTS   mo.Option[string]
}

// ThreadRootTS returns the thread root timestamp: the parent thread TS when
// the shortcut was invoked on a reply, otherwise the message's own TS.
func (e SlackShortcutEvent) ThreadRootTS() string {
	return e.ThreadTS.OrElse(e.MessageTS)
}

// SlackAppMentionEvent carries the fields of an app_mention event.
type SlackAppMentionEvent struct {
	ChannelID string
	UserID    string
	TS        string
}
