// Package github wraps the hosting-service API calls tiamat issues.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	v1 "tiamat/pkg/api/v1"
)

type Client struct {
	ctx    context.Context
	client *github.Client
}

// New builds an authenticated client. The token is checked here, before any
// network call, so a command with no credential fails up front.
func New(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token required; please set the GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		ctx:    ctx,
		client: github.NewClient(tc),
	}, nil
}

func splitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return owner, name, nil
}

// CompareCommits returns the commits reachable from head but not from base.
// An empty result is a successful comparison.
func (c *Client) CompareCommits(repo, base, head string) ([]v1.Commit, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	comparison, _, err := c.client.Repositories.CompareCommits(c.ctx, owner, name, base, head, nil)
	if err != nil {
		logrus.WithError(err).WithFields(map[string]interface{}{
			"repo": repo,
			"base": base,
			"head": head,
		}).Warn("failed to compare commits")
		return nil, err
	}

	commits := make([]v1.Commit, 0, len(comparison.Commits))
	for _, rc := range comparison.Commits {
		commit := v1.Commit{SHA: rc.GetSHA()}
		if rc.Commit != nil {
			commit.Message = rc.Commit.GetMessage()
			if rc.Commit.Author != nil {
				commit.Author = rc.Commit.Author.GetName()
			}
		}
		commits = append(commits, commit)
	}

	logrus.WithFields(map[string]interface{}{
		"repo":    repo,
		"commits": len(commits),
	}).Debugf("compared %s...%s", base, head)
	return commits, nil
}

// CreatePullRequest opens a pull request merging head into base and returns
// its URL.
func (c *Client) CreatePullRequest(repo, base, head string) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}

	pr, _, err := c.client.PullRequests.Create(c.ctx, owner, name, &github.NewPullRequest{
		Title: github.String(fmt.Sprintf("Merge %s into %s", head, base)),
		Head:  github.String(head),
		Base:  github.String(base),
		Body:  github.String(fmt.Sprintf("Automated pull request merging `%s` into `%s`.", head, base)),
	})
	if err != nil {
		logrus.WithError(err).WithFields(map[string]interface{}{
			"repo": repo,
			"base": base,
			"head": head,
		}).Warn("failed to create pull request")
		return "", err
	}

	return pr.GetHTMLURL(), nil
}

// MergePullRequest merges an open pull request with the default method.
func (c *Client) MergePullRequest(repo string, number int) (bool, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return false, err
	}

	result, _, err := c.client.PullRequests.Merge(c.ctx, owner, name, number, "", nil)
	if err != nil {
		logrus.WithError(err).WithFields(map[string]interface{}{
			"repo":  repo,
			"prNum": number,
		}).Warn("failed to merge pull request")
		return false, err
	}

	return result.GetMerged(), nil
}

// GetLatestVersion returns the tag of the latest release. A repository with
// no releases yet yields the 0.0.0 baseline so the first bump starts from
// zero.
func (c *Client) GetLatestVersion(repo string) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}

	release, resp, err := c.client.Repositories.GetLatestRelease(c.ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			logrus.WithField("repo", repo).Debug("no releases found, assuming 0.0.0")
			return "0.0.0", nil
		}
		logrus.WithError(err).WithField("repo", repo).Warn("failed to get latest release")
		return "", err
	}

	return release.GetTagName(), nil
}

// ListReleases returns up to limit recent releases, newest first.
func (c *Client) ListReleases(repo string, limit int) ([]v1.Release, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	list, _, err := c.client.Repositories.ListReleases(c.ctx, owner, name, &github.ListOptions{PerPage: limit})
	if err != nil {
		logrus.WithError(err).WithField("repo", repo).Warn("failed to list releases")
		return nil, err
	}

	releases := make([]v1.Release, 0, len(list))
	for _, r := range list {
		if len(releases) == limit {
			break
		}
		releases = append(releases, v1.Release{
			TagName:     r.GetTagName(),
			Name:        r.GetName(),
			Draft:       r.GetDraft(),
			Prerelease:  r.GetPrerelease(),
			PublishedAt: r.GetPublishedAt().Time,
			URL:         r.GetHTMLURL(),
		})
	}
	return releases, nil
}

// CreateRelease creates a release and returns its URL.
func (c *Client) CreateRelease(repo string, opts v1.ReleaseOptions) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}

	created, _, err := c.client.Repositories.CreateRelease(c.ctx, owner, name, &github.RepositoryRelease{
		TagName:         github.String(opts.TagName),
		TargetCommitish: github.String(opts.TargetBranch),
		Name:            github.String(opts.Name),
		Body:            github.String(opts.Body),
		Draft:           github.Bool(opts.Draft),
		Prerelease:      github.Bool(opts.Prerelease),
	})
	if err != nil {
		logrus.WithError(err).WithFields(map[string]interface{}{
			"repo": repo,
			"tag":  opts.TagName,
		}).Warn("failed to create release")
		return "", err
	}

	return created.GetHTMLURL(), nil
}

// ListWorkflows returns the CI workflows defined in a repository.
func (c *Client) ListWorkflows(repo string) ([]v1.Workflow, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	list, _, err := c.client.Actions.ListWorkflows(c.ctx, owner, name, nil)
	if err != nil {
		logrus.WithError(err).WithField("repo", repo).Warn("failed to list workflows")
		return nil, err
	}

	workflows := make([]v1.Workflow, 0, len(list.Workflows))
	for _, w := range list.Workflows {
		workflows = append(workflows, v1.Workflow{
			ID:    w.GetID(),
			Name:  w.GetName(),
			Path:  w.GetPath(),
			State: w.GetState(),
		})
	}
	return workflows, nil
}

// TriggerWorkflow dispatches a workflow on a branch. The workflow may be
// addressed by numeric ID, file name, or display name.
func (c *Client) TriggerWorkflow(repo, workflow, branch string, inputs map[string]string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	target, err := c.findWorkflow(repo, workflow)
	if err != nil {
		return err
	}

	event := github.CreateWorkflowDispatchEventRequest{Ref: branch}
	if len(inputs) > 0 {
		event.Inputs = make(map[string]interface{}, len(inputs))
		for k, v := range inputs {
			event.Inputs[k] = v
		}
	}

	_, err = c.client.Actions.CreateWorkflowDispatchEventByID(c.ctx, owner, name, target.ID, event)
	if err != nil {
		logrus.WithError(err).WithFields(map[string]interface{}{
			"repo":     repo,
			"workflow": target.Path,
			"branch":   branch,
		}).Warn("failed to trigger workflow")
		return err
	}

	return nil
}

func (c *Client) findWorkflow(repo, workflow string) (*v1.Workflow, error) {
	workflows, err := c.ListWorkflows(repo)
	if err != nil {
		return nil, err
	}

	id, idErr := strconv.ParseInt(workflow, 10, 64)
	for i := range workflows {
		w := &workflows[i]
		if idErr == nil && w.ID == id {
			return w, nil
		}
		if w.Name == workflow || w.Path == workflow || strings.HasSuffix(w.Path, "/"+workflow) {
			return w, nil
		}
	}

	available := make([]string, 0, len(workflows))
	for _, w := range workflows {
		available = append(available, w.Path)
	}
	return nil, fmt.Errorf("workflow %q not found in %s (available: %s)", workflow, repo, strings.Join(available, ", "))
}
