package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tiamat/pkg/notify"
	"tiamat/pkg/slack"
)

var sendOpts struct {
	username string
	emoji    string
}

var sendCmd = &cobra.Command{
	Use:   "send <channel> <message...>",
	Short: "Send a message to a Slack channel",
	Long: `Send a message to a Slack channel.

Examples:
  - send #general "Hello from Tiamat!"
  - send #deployments "Deployment completed" --username "Deploy Bot" --emoji ":rocket:"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]
		message := strings.Join(args[1:], " ")

		err := newSlackClient().Send(message, slack.Options{
			Channel:   channel,
			Username:  sendOpts.username,
			IconEmoji: sendOpts.emoji,
			Tag:       notify.Backend,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✅ Message sent to %s", channel))
		return nil
	},
}

func newSendCommand() *cobra.Command {
	sendCmd.Flags().StringVar(&sendOpts.username, "username", "", "Custom username for the message")
	sendCmd.Flags().StringVar(&sendOpts.emoji, "emoji", "", "Custom emoji for the message")
	return sendCmd
}
