package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Index", "Repository"})
		for i, repo := range cfg.Repositories {
			table.Append([]string{fmt.Sprintf("%d", i+1), repo})
		}
		table.Render()
		return nil
	},
}

func newListCommand() *cobra.Command {
	return listCmd
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Display current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Setting", "Value"})
		table.Append([]string{"Base Branch", rootOpts.base})
		table.Append([]string{"Head Branch", rootOpts.head})
		table.Append([]string{"GitHub Token", configured(cfg.GitHubToken != "")})
		table.Append([]string{"Slack", configured(cfg.SlackToken != "" || cfg.SlackWebhookURL != "")})
		table.Append([]string{"Jira", configured(cfg.JiraUser != "" && cfg.JiraToken != "")})
		table.Append([]string{"Repositories", fmt.Sprintf("%d", len(cfg.Repositories))})
		table.Render()
		return nil
	},
}

func configured(ok bool) string {
	if ok {
		return "Set ✅"
	}
	return "Not Set ❌"
}

func newSettingsCommand() *cobra.Command {
	return settingsCmd
}
