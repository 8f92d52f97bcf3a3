package orchestrator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMergeService struct {
	merged bool
	err    error
	calls  int
}

func (f *fakeMergeService) MergePullRequest(repo string, number int) (bool, error) {
	f.calls++
	return f.merged, f.err
}

func TestMergeConfirmed(t *testing.T) {
	git := &fakeMergeService{merged: true}
	out := &bytes.Buffer{}

	m := NewMerge(git, strings.NewReader("y\n"), out)
	require.NoError(t, m.Run("acme/coralreef", 123))

	assert.Equal(t, 1, git.calls)
	assert.Contains(t, out.String(), "Successfully merged PR #123")
}

func TestMergeDeclined(t *testing.T) {
	git := &fakeMergeService{merged: true}
	out := &bytes.Buffer{}

	m := NewMerge(git, strings.NewReader("no\n"), out)
	require.NoError(t, m.Run("acme/coralreef", 123))

	assert.Equal(t, 0, git.calls)
	assert.Contains(t, out.String(), "cancelled")
}

func TestMergeNotMerged(t *testing.T) {
	git := &fakeMergeService{merged: false}
	out := &bytes.Buffer{}

	m := NewMerge(git, strings.NewReader("y\n"), out)
	require.NoError(t, m.Run("acme/coralreef", 123))

	assert.Contains(t, out.String(), "Failed to merge")
}

func TestMergeError(t *testing.T) {
	git := &fakeMergeService{err: errors.New("conflict")}

	m := NewMerge(git, strings.NewReader("y\n"), &bytes.Buffer{})
	err := m.Run("acme/coralreef", 123)

	assert.Error(t, err)
}

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"\n", true},
		{"n\n", false},
		{"no\n", false},
		{"whatever\n", false},
		{"", false}, // EOF declines
	}

	for _, tc := range tests {
		got := confirm(strings.NewReader(tc.input), &bytes.Buffer{}, "Proceed?")
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}
