// Package orchestrator drives the multi-repository pipelines behind the
// check, createpr, bump, release and merge commands.
package orchestrator

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	v1 "tiamat/pkg/api/v1"
	"tiamat/pkg/notify"
)

// GitService is the subset of the hosting-service client the pull request
// pipeline drives.
type GitService interface {
	CompareCommits(repo, base, head string) ([]v1.Commit, error)
	CreatePullRequest(repo, base, head string) (string, error)
}

// Notifier delivers one aggregated message to an audience.
type Notifier interface {
	Notify(text string, audience notify.Audience) error
}

// PullRequests runs branch comparisons and conditional pull request creation
// over one or many repositories. Per-repository failures are reported and
// never abort the batch.
type PullRequests struct {
	git      GitService
	router   *notify.Router
	notifier Notifier
	out      io.Writer
}

func NewPullRequests(git GitService, router *notify.Router, notifier Notifier, out io.Writer) *PullRequests {
	return &PullRequests{git: git, router: router, notifier: notifier, out: out}
}

// Check compares base...head for every repository and renders the pending
// commits.
func (p *PullRequests) Check(repoList []string, base, head string) {
	for _, repo := range repoList {
		result, err := p.compare(repo, base, head)
		if err != nil {
			fmt.Fprintln(p.out, color.RedString("❌ %s: comparison failed: %v", repo, err))
			continue
		}
		p.renderPending(result)
	}
}

// CreatePullRequests runs the compare → create-if-needed → notify pipeline.
// One notification per non-empty audience is sent after the whole batch.
func (p *PullRequests) CreatePullRequests(repoList []string, base, head string) {
	buckets := notify.NewBuckets()

	for _, repo := range repoList {
		result, err := p.compare(repo, base, head)
		if err != nil {
			fmt.Fprintln(p.out, color.RedString("❌ %s: comparison failed: %v", repo, err))
			continue
		}
		if !result.HasCommits() {
			fmt.Fprintln(p.out, color.YellowString("— %s: no pending commits, skipping", repo))
			continue
		}

		url, err := p.git.CreatePullRequest(repo, base, head)
		if err != nil || url == "" {
			fmt.Fprintln(p.out, color.RedString("❌ %s: failed to create pull request", repo))
			if err != nil {
				logrus.WithError(err).WithField("repo", repo).Warn("pull request creation failed")
			}
			continue
		}

		fmt.Fprintln(p.out, color.GreenString("✅ %s: %s", repo, url))
		buckets.Add(p.router.Classify(repo), fmt.Sprintf("• %s: %s", repo, url))
	}

	// Delivery is best effort: an undeliverable notification never rolls
	// back the pull requests it reports.
	for _, msg := range buckets.Flush() {
		text := "🚀 New release pull requests are ready for review:\n" + msg.Text
		if err := p.notifier.Notify(text, msg.Audience); err != nil {
			fmt.Fprintln(p.out, color.YellowString("⚠️ failed to notify %s developers: %v", msg.Audience, err))
		}
	}
}

func (p *PullRequests) compare(repo, base, head string) (*v1.PendingCommits, error) {
	commits, err := p.git.CompareCommits(repo, base, head)
	if err != nil {
		return nil, err
	}
	return &v1.PendingCommits{Repository: repo, Base: base, Head: head, Commits: commits}, nil
}

func (p *PullRequests) renderPending(result *v1.PendingCommits) {
	if !result.HasCommits() {
		fmt.Fprintln(p.out, color.YellowString("— %s: no pending commits between %s and %s",
			result.Repository, result.Base, result.Head))
		return
	}

	fmt.Fprintln(p.out, color.GreenString("✅ %s: %d pending commit(s) from %s to %s",
		result.Repository, len(result.Commits), result.Head, result.Base))

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"SHA", "Author", "Message"})
	table.SetAutoWrapText(false)
	for _, commit := range result.Commits {
		table.Append([]string{commit.ShortSHA(), commit.Author, commit.Summary()})
	}
	table.Render()
}
