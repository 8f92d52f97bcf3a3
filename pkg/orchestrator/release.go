package orchestrator

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	v1 "tiamat/pkg/api/v1"
	"tiamat/pkg/version"
)

// ReleaseService is the subset of the hosting-service client the release
// pipeline drives.
type ReleaseService interface {
	GetLatestVersion(repo string) (string, error)
	CreateRelease(repo string, opts v1.ReleaseOptions) (string, error)
	ListReleases(repo string, limit int) ([]v1.Release, error)
}

// ReleaseRequest carries the operator-supplied release attributes. Empty
// name and body get defaults derived from the version.
type ReleaseRequest struct {
	TargetBranch string
	Name         string
	Body         string
	Draft        bool
	Prerelease   bool
}

// Releases drives version lookup, bumping and release creation behind a
// confirmation gate.
type Releases struct {
	git ReleaseService
	in  io.Reader
	out io.Writer

	// now is swapped in tests to pin the templated release body.
	now func() time.Time
}

func NewReleases(git ReleaseService, in io.Reader, out io.Writer) *Releases {
	return &Releases{git: git, in: in, out: out, now: time.Now}
}

// BumpAndRelease fetches the latest version, bumps it, and creates the
// release once the operator confirms. Declining is a normal termination.
func (r *Releases) BumpAndRelease(repo string, kind version.Kind, req ReleaseRequest) error {
	current, err := r.git.GetLatestVersion(repo)
	if err != nil {
		return fmt.Errorf("fetching latest version for %s: %w", repo, err)
	}

	parsed, err := version.Parse(current)
	if err != nil {
		return fmt.Errorf("latest release tag for %s: %w", repo, err)
	}
	next := parsed.Bump(kind)

	fmt.Fprintln(r.out, color.New(color.FgBlue, color.Bold).Sprint("🚀 Creating new release:"))
	fmt.Fprintf(r.out, "  • Repository: %s\n", repo)
	fmt.Fprintf(r.out, "  • Current version: %s\n", current)
	fmt.Fprintf(r.out, "  • New version: %s (%s bump)\n", next, kind)

	if err := r.create(repo, next.String(), req); err != nil {
		return err
	}
	return nil
}

// Release creates a release for an explicit tag behind the same
// confirmation gate.
func (r *Releases) Release(repo, tag string, req ReleaseRequest) error {
	fmt.Fprintln(r.out, color.New(color.FgBlue, color.Bold).Sprint("🚀 Creating release:"))
	fmt.Fprintf(r.out, "  • Repository: %s\n", repo)
	fmt.Fprintf(r.out, "  • Tag: %s\n", tag)

	return r.create(repo, tag, req)
}

func (r *Releases) create(repo, tag string, req ReleaseRequest) error {
	name := req.Name
	if name == "" {
		name = tag
	}
	body := req.Body
	if body == "" {
		body = fmt.Sprintf("Release %s, created on %s.", tag, r.now().Format("2006-01-02"))
	}

	fmt.Fprintf(r.out, "  • Target branch: %s\n", req.TargetBranch)
	fmt.Fprintf(r.out, "  • Name: %s\n", name)

	if !confirm(r.in, r.out, "Do you want to create this release?") {
		fmt.Fprintln(r.out, color.YellowString("Release creation cancelled."))
		return nil
	}

	url, err := r.git.CreateRelease(repo, v1.ReleaseOptions{
		TagName:      tag,
		TargetBranch: req.TargetBranch,
		Name:         name,
		Body:         body,
		Draft:        req.Draft,
		Prerelease:   req.Prerelease,
	})
	if err != nil {
		return fmt.Errorf("creating release %s for %s: %w", tag, repo, err)
	}

	fmt.Fprintln(r.out, color.GreenString("✅ Successfully created release %s", tag))
	if url != "" {
		fmt.Fprintln(r.out, url)
	}
	return nil
}

// ListReleases renders a release table per repository. Per-repository
// failures are reported and the remaining repositories still render.
func (r *Releases) ListReleases(repoList []string, limit int) {
	for _, repo := range repoList {
		releases, err := r.git.ListReleases(repo, limit)
		if err != nil {
			fmt.Fprintln(r.out, color.RedString("❌ %s: failed to list releases: %v", repo, err))
			continue
		}
		if len(releases) == 0 {
			fmt.Fprintln(r.out, color.YellowString("— %s: no releases", repo))
			continue
		}

		fmt.Fprintf(r.out, "Releases for %s:\n", repo)
		table := tablewriter.NewWriter(r.out)
		table.SetHeader([]string{"Tag", "Name", "Published", "Flags"})
		table.SetAutoWrapText(false)
		for _, release := range releases {
			published := ""
			if !release.PublishedAt.IsZero() {
				published = release.PublishedAt.Format("2006-01-02")
			}
			table.Append([]string{release.TagName, release.Name, published, releaseFlags(release)})
		}
		table.Render()
	}
}

func releaseFlags(release v1.Release) string {
	switch {
	case release.Draft && release.Prerelease:
		return "draft, prerelease"
	case release.Draft:
		return "draft"
	case release.Prerelease:
		return "prerelease"
	}
	return ""
}
