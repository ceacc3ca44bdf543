package slack

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Notifier posts incident lifecycle events to the HR operations Slack
// channel. It implements services.ChannelPoster.
type Notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier creates a notifier for the given bot token and channel.
// Returns nil if the token or channel is empty, which disables the
// Slack channel entirely.
func NewNotifier(botToken, channel string) *Notifier {
	if botToken == "" || channel == "" {
		return nil
	}
	return &Notifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

// Post sends a message to the configured channel.
func (n *Notifier) Post(message string) error {
	_, _, err := n.client.PostMessage(
		n.channel,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return fmt.Errorf("failed to post to channel %s: %w", n.channel, err)
	}
	return nil
}
