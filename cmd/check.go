package cmd

import (
	"github.com/spf13/cobra"

	"tiamat/pkg/repos"
)

var checkCmd = &cobra.Command{
	Use:   "check [base...head] [repo]",
	Short: "Check for pending commits between branches",
	Long: `Check for pending commits between branches.

The compare spec can be in 'base...head' or 'base..head' format.

Examples:
  - check main...release
  - check main...release coralreef
  - check (uses the default branches)`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, head := rootOpts.base, rootOpts.head
		var repoArg string
		if len(args) > 0 {
			base, head = repos.ParseCompareSpec(args[0], base, head)
		}
		if len(args) > 1 {
			repoArg = args[1]
		}

		repoList, err := targetRepos(repoArg)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		newPullRequestOrchestrator(cmd, client).Check(repoList, base, head)
		return nil
	},
}

func newCheckCommand() *cobra.Command {
	return checkCmd
}
