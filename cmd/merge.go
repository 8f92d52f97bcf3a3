package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tiamat/pkg/orchestrator"
	"tiamat/pkg/repos"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <repo> <pr_number>",
	Short: "Merge a pull request",
	Long: `Merge a pull request using the default merge method.

Examples:
  - merge coralreef 123
  - merge owner/coralreef 456`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := repos.Resolve(args[0], cfg.Repositories)
		if err != nil {
			return err
		}

		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid pull request number %q", args[1])
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		merge := orchestrator.NewMerge(client, cmd.InOrStdin(), cmd.OutOrStdout())
		return merge.Run(repo, number)
	},
}

func newMergeCommand() *cobra.Command {
	return mergeCmd
}
