package links

import (
	"fmt"
	"log"
	"strings"

	"threadscan/clients"
)

// Resolver produces a stable permalink for a message. It prefers the
// authoritative chat.getPermalink lookup and degrades to a deterministically
// constructed archive URL when the lookup fails. Resolution never fails the
// caller.
type Resolver struct {
	slackClient clients.SlackClient
}

// NewResolver creates a new instance of Resolver
func NewResolver(slackClient clients.SlackClient) *Resolver {
	return &Resolver{slackClient: slackClient}
}

// Resolve returns a permalink for the message. A failed authoritative lookup
// is logged and degrades to the fallback link - it never raises.
func (r *Resolver) Resolve(channelID, messageTS string) string {
	permalink, err := r.slackClient.GetPermalink(&clients.SlackPermalinkParameters{
		Channel: channelID,
		TS:      messageTS,
	})
	if err != nil {
		log.Printf("⚠️ Failed to resolve permalink for message %s in channel %s - using fallback link: %v",
			messageTS, channelID, err)
		return FallbackLink(channelID, messageTS)
	}
	return permalink
}

// FallbackLink constructs the archive URL form of a message permalink. The
// message ID in an archive URL is the timestamp with the dot removed.
func FallbackLink(channelID, messageTS string) string {
	messageID := strings.ReplaceAll(messageTS, ".", "")
	return fmt.Sprintf("https://slack.com/archives/%s/p%s", channelID, messageID)
}
