package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"tiamat/pkg/github"
	"tiamat/pkg/notify"
	"tiamat/pkg/orchestrator"
	"tiamat/pkg/repos"
	"tiamat/pkg/slack"
)

func newGitHubClient(ctx context.Context) (*github.Client, error) {
	return github.New(ctx, cfg.GitHubToken)
}

func newSlackClient() *slack.Client {
	return slack.New(
		cfg.SlackToken,
		cfg.SlackWebhookURL,
		cfg.SlackDefaultChannel,
		cfg.SlackFEDevelopers,
		cfg.SlackBEDevelopers,
	)
}

func newPullRequestOrchestrator(cmd *cobra.Command, git orchestrator.GitService) *orchestrator.PullRequests {
	router := notify.NewRouter(cfg.FrontendRepositories)
	return orchestrator.NewPullRequests(git, router, newSlackClient(), cmd.OutOrStdout())
}

// targetRepos resolves an explicit repository argument, or falls back to the
// whole configured list.
func targetRepos(arg string) ([]string, error) {
	if arg == "" {
		return cfg.Repositories, nil
	}

	full, err := repos.Resolve(arg, cfg.Repositories)
	if err != nil {
		return nil, err
	}
	return []string{full}, nil
}
