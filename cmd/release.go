package cmd

import (
	"github.com/spf13/cobra"

	"tiamat/pkg/orchestrator"
	"tiamat/pkg/repos"
	"tiamat/pkg/version"
)

var bumpOpts struct {
	major      bool
	minor      bool
	patch      bool
	branch     string
	name       string
	body       string
	draft      bool
	prerelease bool
}

var bumpCmd = &cobra.Command{
	Use:   "bump <repo>",
	Short: "Bump the version and create a new release",
	Long: `Bump version and create a new release.

Increments the version number based on the latest release and creates a
new release with the bumped version. By default the minor version is
bumped (1.0.0 -> 1.1.0).

Examples:
  - bump coralreef
  - bump coralreef --patch
  - bump coralreef --major --name "Major Release"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := repos.Resolve(args[0], cfg.Repositories)
		if err != nil {
			return err
		}

		kind := version.Minor
		switch {
		case bumpOpts.major:
			kind = version.Major
		case bumpOpts.patch:
			kind = version.Patch
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		releases := orchestrator.NewReleases(client, cmd.InOrStdin(), cmd.OutOrStdout())
		return releases.BumpAndRelease(repo, kind, orchestrator.ReleaseRequest{
			TargetBranch: bumpOpts.branch,
			Name:         bumpOpts.name,
			Body:         bumpOpts.body,
			Draft:        bumpOpts.draft,
			Prerelease:   bumpOpts.prerelease,
		})
	},
}

func newBumpCommand() *cobra.Command {
	bumpCmd.Flags().BoolVar(&bumpOpts.major, "major", false, "Bump the major version")
	bumpCmd.Flags().BoolVar(&bumpOpts.minor, "minor", false, "Bump the minor version (default)")
	bumpCmd.Flags().BoolVar(&bumpOpts.patch, "patch", false, "Bump the patch version")
	bumpCmd.Flags().StringVarP(&bumpOpts.branch, "branch", "b", "main", "Target branch for the release")
	bumpCmd.Flags().StringVarP(&bumpOpts.name, "name", "n", "", "Release name (defaults to the version)")
	bumpCmd.Flags().StringVarP(&bumpOpts.body, "body", "m", "", "Release body")
	bumpCmd.Flags().BoolVar(&bumpOpts.draft, "draft", false, "Create as draft release")
	bumpCmd.Flags().BoolVar(&bumpOpts.prerelease, "prerelease", false, "Mark as pre-release")
	return bumpCmd
}

var releaseOpts struct {
	target     string
	name       string
	body       string
	draft      bool
	prerelease bool
}

var releaseCmd = &cobra.Command{
	Use:   "release <tag> <repo>",
	Short: "Create a release for an explicit tag",
	Long: `Create a release for an explicit tag.

Examples:
  - release v1.4.0 coralreef
  - release 2.0.0 coralreef --target release --prerelease`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]
		repo, err := repos.Resolve(args[1], cfg.Repositories)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		releases := orchestrator.NewReleases(client, cmd.InOrStdin(), cmd.OutOrStdout())
		return releases.Release(repo, tag, orchestrator.ReleaseRequest{
			TargetBranch: releaseOpts.target,
			Name:         releaseOpts.name,
			Body:         releaseOpts.body,
			Draft:        releaseOpts.draft,
			Prerelease:   releaseOpts.prerelease,
		})
	},
}

func newReleaseCommand() *cobra.Command {
	releaseCmd.Flags().StringVar(&releaseOpts.target, "target", "main", "Target branch for the release")
	releaseCmd.Flags().StringVarP(&releaseOpts.name, "name", "n", "", "Release name (defaults to the tag)")
	releaseCmd.Flags().StringVarP(&releaseOpts.body, "body", "m", "", "Release body")
	releaseCmd.Flags().BoolVar(&releaseOpts.draft, "draft", false, "Create as draft release")
	releaseCmd.Flags().BoolVar(&releaseOpts.prerelease, "prerelease", false, "Mark as pre-release")
	return releaseCmd
}

var releasesOpts struct {
	limit int
}

var releasesCmd = &cobra.Command{
	Use:   "releases [repo]",
	Short: "List recent releases",
	Long: `List recent releases for a repository.

If no repository is given, releases for every configured repository are
listed.

Examples:
  - releases coralreef
  - releases coralreef --limit 10
  - releases`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var repoArg string
		if len(args) > 0 {
			repoArg = args[0]
		}

		repoList, err := targetRepos(repoArg)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		releases := orchestrator.NewReleases(client, cmd.InOrStdin(), cmd.OutOrStdout())
		releases.ListReleases(repoList, releasesOpts.limit)
		return nil
	},
}

func newReleasesCommand() *cobra.Command {
	releasesCmd.Flags().IntVarP(&releasesOpts.limit, "limit", "n", 5, "Number of releases to show")
	return releasesCmd
}
