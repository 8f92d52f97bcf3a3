package orchestrator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "tiamat/pkg/api/v1"
	"tiamat/pkg/notify"
)

type fakeGit struct {
	pending    map[string][]v1.Commit
	compareErr map[string]error
	createURL  map[string]string
	createErr  map[string]error

	compareCalls []string
	createCalls  []string
}

func (f *fakeGit) CompareCommits(repo, base, head string) ([]v1.Commit, error) {
	f.compareCalls = append(f.compareCalls, repo)
	if err := f.compareErr[repo]; err != nil {
		return nil, err
	}
	return f.pending[repo], nil
}

func (f *fakeGit) CreatePullRequest(repo, base, head string) (string, error) {
	f.createCalls = append(f.createCalls, repo)
	if err := f.createErr[repo]; err != nil {
		return "", err
	}
	return f.createURL[repo], nil
}

type fakeNotifier struct {
	messages []notify.Message
	err      error
}

func (f *fakeNotifier) Notify(text string, audience notify.Audience) error {
	f.messages = append(f.messages, notify.Message{Audience: audience, Text: text})
	return f.err
}

func someCommit() v1.Commit {
	return v1.Commit{SHA: "abc1234def5678", Author: "Jane Doe", Message: "fix: the thing\n\nlonger body"}
}

func TestCreatePullRequestsOnlyPendingRepo(t *testing.T) {
	git := &fakeGit{
		pending:   map[string][]v1.Commit{"acme/b": {someCommit()}},
		createURL: map[string]string{"acme/b": "https://example.com/acme/b/pull/1"},
	}
	notifier := &fakeNotifier{}
	out := &bytes.Buffer{}

	p := NewPullRequests(git, notify.NewRouter(nil), notifier, out)
	p.CreatePullRequests([]string{"acme/a", "acme/b", "acme/c"}, "main", "release")

	assert.Equal(t, []string{"acme/a", "acme/b", "acme/c"}, git.compareCalls)
	assert.Equal(t, []string{"acme/b"}, git.createCalls)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, notify.Backend, notifier.messages[0].Audience)
	assert.Contains(t, notifier.messages[0].Text, "https://example.com/acme/b/pull/1")
	assert.Contains(t, out.String(), "https://example.com/acme/b/pull/1")
}

func TestCreatePullRequestsRoutesFrontend(t *testing.T) {
	git := &fakeGit{
		pending: map[string][]v1.Commit{
			"acme/web": {someCommit()},
			"acme/api": {someCommit()},
		},
		createURL: map[string]string{
			"acme/web": "https://example.com/acme/web/pull/7",
			"acme/api": "https://example.com/acme/api/pull/8",
		},
	}
	notifier := &fakeNotifier{}

	p := NewPullRequests(git, notify.NewRouter([]string{"acme/web"}), notifier, &bytes.Buffer{})
	p.CreatePullRequests([]string{"acme/web", "acme/api"}, "main", "release")

	require.Len(t, notifier.messages, 2)
	assert.Equal(t, notify.Frontend, notifier.messages[0].Audience)
	assert.Contains(t, notifier.messages[0].Text, "acme/web")
	assert.NotContains(t, notifier.messages[0].Text, "acme/api")
	assert.Equal(t, notify.Backend, notifier.messages[1].Audience)
	assert.Contains(t, notifier.messages[1].Text, "acme/api")
}

func TestCreatePullRequestsFailureQueuesNoNotification(t *testing.T) {
	git := &fakeGit{
		pending:   map[string][]v1.Commit{"acme/b": {someCommit()}},
		createErr: map[string]error{"acme/b": errors.New("boom")},
	}
	notifier := &fakeNotifier{}
	out := &bytes.Buffer{}

	p := NewPullRequests(git, notify.NewRouter(nil), notifier, out)
	p.CreatePullRequests([]string{"acme/a", "acme/b", "acme/c"}, "main", "release")

	// The batch still visits every repository and sends nothing.
	assert.Equal(t, []string{"acme/a", "acme/b", "acme/c"}, git.compareCalls)
	assert.Empty(t, notifier.messages)
	assert.Contains(t, out.String(), "failed to create pull request")
}

func TestCreatePullRequestsEmptyURLIsFailure(t *testing.T) {
	git := &fakeGit{
		pending:   map[string][]v1.Commit{"acme/b": {someCommit()}},
		createURL: map[string]string{"acme/b": ""},
	}
	notifier := &fakeNotifier{}

	p := NewPullRequests(git, notify.NewRouter(nil), notifier, &bytes.Buffer{})
	p.CreatePullRequests([]string{"acme/b"}, "main", "release")

	assert.Empty(t, notifier.messages)
}

func TestCreatePullRequestsComparisonFailureContinues(t *testing.T) {
	git := &fakeGit{
		compareErr: map[string]error{"acme/a": errors.New("no such branch")},
		pending:    map[string][]v1.Commit{"acme/b": {someCommit()}},
		createURL:  map[string]string{"acme/b": "https://example.com/acme/b/pull/2"},
	}
	notifier := &fakeNotifier{}
	out := &bytes.Buffer{}

	p := NewPullRequests(git, notify.NewRouter(nil), notifier, out)
	p.CreatePullRequests([]string{"acme/a", "acme/b"}, "main", "release")

	assert.Equal(t, []string{"acme/b"}, git.createCalls)
	assert.Contains(t, out.String(), "comparison failed")
	require.Len(t, notifier.messages, 1)
}

func TestCreatePullRequestsNotificationFailureIsNotFatal(t *testing.T) {
	git := &fakeGit{
		pending:   map[string][]v1.Commit{"acme/b": {someCommit()}},
		createURL: map[string]string{"acme/b": "https://example.com/acme/b/pull/3"},
	}
	notifier := &fakeNotifier{err: errors.New("slack down")}
	out := &bytes.Buffer{}

	p := NewPullRequests(git, notify.NewRouter(nil), notifier, out)
	p.CreatePullRequests([]string{"acme/b"}, "main", "release")

	assert.Contains(t, out.String(), "https://example.com/acme/b/pull/3")
	assert.Contains(t, out.String(), "failed to notify")
}

func TestCheckRendersPendingCommits(t *testing.T) {
	git := &fakeGit{
		pending: map[string][]v1.Commit{"acme/b": {someCommit()}},
	}
	out := &bytes.Buffer{}

	p := NewPullRequests(git, notify.NewRouter(nil), &fakeNotifier{}, out)
	p.Check([]string{"acme/a", "acme/b"}, "main", "release")

	assert.Contains(t, out.String(), "no pending commits")
	assert.Contains(t, out.String(), "abc1234")
	assert.Contains(t, out.String(), "Jane Doe")
	assert.Contains(t, out.String(), "fix: the thing")
	assert.NotContains(t, out.String(), "longer body")
	// check never creates pull requests
	assert.Empty(t, git.createCalls)
}
