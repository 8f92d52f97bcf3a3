package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok123")
	t.Setenv("REPOSITORIES", "acme/coralreef,acme/lagoon,acme/web")
	t.Setenv("FRONTEND_REPOSITORIES", "acme/web")
	t.Setenv("BASE_BRANCH", "develop")
	t.Setenv("HEAD_BRANCH", "staging")
	t.Setenv("SLACK_BE_DEVELOPERS", "U111,U222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok123", cfg.GitHubToken)
	assert.Equal(t, []string{"acme/coralreef", "acme/lagoon", "acme/web"}, cfg.Repositories)
	assert.Equal(t, []string{"acme/web"}, cfg.FrontendRepositories)
	assert.Equal(t, "develop", cfg.BaseBranch)
	assert.Equal(t, "staging", cfg.HeadBranch)
	assert.Equal(t, []string{"U111", "U222"}, cfg.SlackBEDevelopers)
	assert.Equal(t, "customfield_10035", cfg.JiraStoryPointsField)
}

func TestLoadPrunesEmptyEntries(t *testing.T) {
	t.Setenv("REPOSITORIES", "acme/coralreef, ,acme/lagoon,")
	t.Setenv("FRONTEND_REPOSITORIES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"acme/coralreef", "acme/lagoon"}, cfg.Repositories)
	assert.Empty(t, cfg.FrontendRepositories)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BASE_BRANCH", "main")
	t.Setenv("HEAD_BRANCH", "release")
	t.Setenv("SLACK_DEFAULT_CHANNEL", "#general")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.BaseBranch)
	assert.Equal(t, "release", cfg.HeadBranch)
	assert.Equal(t, "#general", cfg.SlackDefaultChannel)
}
