// Package config holds the process-wide configuration, read from the
// environment exactly once at startup. Components receive the resulting
// struct through their constructors; nothing else reads the environment.
package config

import (
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken string `env:"GITHUB_TOKEN"`

	// Repositories is the ordered list of fully qualified owner/name
	// identifiers short names are resolved against.
	Repositories []string `env:"REPOSITORIES" envSeparator:","`

	// FrontendRepositories is the subset of Repositories whose pull
	// request notifications go to the frontend audience.
	FrontendRepositories []string `env:"FRONTEND_REPOSITORIES" envSeparator:","`

	BaseBranch string `env:"BASE_BRANCH" envDefault:"main"`
	HeadBranch string `env:"HEAD_BRANCH" envDefault:"release"`

	SlackToken          string   `env:"SLACK_BOT_TOKEN"`
	SlackWebhookURL     string   `env:"SLACK_WEBHOOK_URL"`
	SlackDefaultChannel string   `env:"SLACK_DEFAULT_CHANNEL" envDefault:"#general"`
	SlackFEDevelopers   []string `env:"SLACK_FE_DEVELOPERS" envSeparator:","`
	SlackBEDevelopers   []string `env:"SLACK_BE_DEVELOPERS" envSeparator:","`

	JiraURL              string `env:"JIRA_URL" envDefault:"https://your-domain.atlassian.net"`
	JiraUser             string `env:"JIRA_USER"`
	JiraToken            string `env:"JIRA_TOKEN"`
	JiraDefaultProject   string `env:"JIRA_DEFAULT_PROJECT"`
	JiraStoryPointsField string `env:"JIRA_STORY_POINTS_FIELD" envDefault:"customfield_10035"`
}

// Load reads an optional .env file and then parses the environment into a
// Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Repositories = prune(cfg.Repositories)
	cfg.FrontendRepositories = prune(cfg.FrontendRepositories)
	cfg.SlackFEDevelopers = prune(cfg.SlackFEDevelopers)
	cfg.SlackBEDevelopers = prune(cfg.SlackBEDevelopers)

	return cfg, nil
}

// prune drops the empty entries a split of an empty or trailing-comma value
// produces.
func prune(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
