package cmd

import (
	"github.com/spf13/cobra"

	"tiamat/pkg/repos"
)

var createPRCmd = &cobra.Command{
	Use:   "createpr [base...head] [repo]",
	Short: "Create pull requests for branches with pending commits",
	Long: `Create pull requests between branches.

Each repository is compared first; a pull request is only opened when
pending commits exist. One Slack notification per audience is sent after
the whole batch.

Examples:
  - createpr main...release
  - createpr main...release coralreef
  - createpr (uses the default branches)`,
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

		newPullRequestOrchestrator(cmd, client).CreatePullRequests(repoList, base, head)
		return nil
	},
}

func newCreatePRCommand() *cobra.Command {
	return createPRCmd
}
