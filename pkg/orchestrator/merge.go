package orchestrator

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// MergeService merges an already-open pull request.
type MergeService interface {
	MergePullRequest(repo string, number int) (bool, error)
}

// Merge runs a single pull request merge behind a confirmation gate.
type Merge struct {
	git MergeService
	in  io.Reader
	out io.Writer
}

func NewMerge(git MergeService, in io.Reader, out io.Writer) *Merge {
	return &Merge{git: git, in: in, out: out}
}

func (m *Merge) Run(repo string, number int) error {
	fmt.Fprintln(m.out, color.New(color.FgBlue, color.Bold).Sprint("🔀 Merging pull request:"))
	fmt.Fprintf(m.out, "  • Repository: %s\n", repo)
	fmt.Fprintf(m.out, "  • PR Number: #%d\n", number)

	if !confirm(m.in, m.out, "Do you want to merge this pull request?") {
		fmt.Fprintln(m.out, color.YellowString("Merge cancelled."))
		return nil
	}

	merged, err := m.git.MergePullRequest(repo, number)
	if err != nil {
		return fmt.Errorf("merging PR #%d in %s: %w", number, repo, err)
	}
	if !merged {
		fmt.Fprintln(m.out, color.RedString("❌ Failed to merge PR #%d in %s", number, repo))
		return nil
	}

	fmt.Fprintln(m.out, color.GreenString("✅ Successfully merged PR #%d in %s", number, repo))
	return nil
}
