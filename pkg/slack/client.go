// Package slack delivers tiamat's messages to the team chat.
package slack

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"tiamat/pkg/notify"
)

// Client sends messages through either an incoming webhook or the Web API.
// The webhook takes precedence when both are configured.
type Client struct {
	token          string
	webhookURL     string
	defaultChannel string
	feDevelopers   []string
	beDevelopers   []string
}

func New(token, webhookURL, defaultChannel string, feDevelopers, beDevelopers []string) *Client {
	return &Client{
		token:          token,
		webhookURL:     webhookURL,
		defaultChannel: defaultChannel,
		feDevelopers:   feDevelopers,
		beDevelopers:   beDevelopers,
	}
}

func (c *Client) Configured() bool {
	return c.token != "" || c.webhookURL != ""
}

// Options carries the optional message attributes. A zero Tag means no
// audience is mentioned.
type Options struct {
	Channel   string
	Username  string
	IconEmoji string
	Tag       notify.Audience
}

// Send posts one message. Audience tags become <@user> mentions prefixed to
// the text.
func (c *Client) Send(text string, opts Options) error {
	if !c.Configured() {
		return fmt.Errorf("slack not configured; set SLACK_BOT_TOKEN or SLACK_WEBHOOK_URL")
	}

	channel := opts.Channel
	if channel == "" {
		channel = c.defaultChannel
	}

	if mentions := c.mentions(opts.Tag); mentions != "" {
		text = mentions + " " + text
	}

	if c.webhookURL != "" {
		return c.sendWebhook(channel, text, opts)
	}
	return c.sendAPI(channel, text, opts)
}

// Notify delivers one aggregated audience message to the default channel.
func (c *Client) Notify(text string, audience notify.Audience) error {
	return c.Send(text, Options{Tag: audience})
}

func (c *Client) mentions(audience notify.Audience) string {
	var users []string
	switch audience {
	case notify.Frontend:
		users = c.feDevelopers
	case notify.Backend:
		users = c.beDevelopers
	default:
		return ""
	}

	tags := make([]string, 0, len(users))
	for _, u := range users {
		tags = append(tags, fmt.Sprintf("<@%s>", u))
	}
	return strings.Join(tags, " ")
}

func (c *Client) sendWebhook(channel, text string, opts Options) error {
	msg := &slack.WebhookMessage{
		Channel:   channel,
		Text:      text,
		Username:  opts.Username,
		IconEmoji: opts.IconEmoji,
	}

	if err := slack.PostWebhook(c.webhookURL, msg); err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("failed to send slack message")
		return err
	}
	return nil
}

func (c *Client) sendAPI(channel, text string, opts Options) error {
	api := slack.New(c.token)

	msgOpts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if opts.Username != "" {
		msgOpts = append(msgOpts, slack.MsgOptionUsername(opts.Username))
	}
	if opts.IconEmoji != "" {
		msgOpts = append(msgOpts, slack.MsgOptionIconEmoji(opts.IconEmoji))
	}

	if _, _, err := api.PostMessage(channel, msgOpts...); err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("failed to send slack message")
		return err
	}
	return nil
}
