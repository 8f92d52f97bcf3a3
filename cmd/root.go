package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tiamat/pkg/config"
)

var rootOpts struct {
	base    string
	head    string
	verbose bool
}

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tiamat",
	Short: "🐉 Tiamat - repository management tool",
	Long: `Tiamat automates release chores across your repositories: comparing
branches, opening pull requests, cutting releases, triggering workflows and
posting the results to Slack.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootOpts.verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// Configured default branches apply unless the flag was given
		// explicitly.
		if !cmd.Flags().Changed("base") && cfg.BaseBranch != "" {
			rootOpts.base = cfg.BaseBranch
		}
		if !cmd.Flags().Changed("head") && cfg.HeadBranch != "" {
			rootOpts.head = cfg.HeadBranch
		}
		return nil
	},
}

func NewRootCommand() *cobra.Command {
	rootCmd.PersistentFlags().StringVar(&rootOpts.base, "base", "main", "Base branch")
	rootCmd.PersistentFlags().StringVar(&rootOpts.head, "head", "release", "Head branch")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newCheckCommand(),
		newCreatePRCommand(),
		newBumpCommand(),
		newReleaseCommand(),
		newReleasesCommand(),
		newMergeCommand(),
		newRunCommand(),
		newWorkflowsCommand(),
		newDeployCommand(),
		newJiraCommand(),
		newIssueCommand(),
		newSprintReportCommand(),
		newSendCommand(),
		newListCommand(),
		newSettingsCommand(),
	)
	return rootCmd
}
