// Package jira wraps the issue-tracker queries tiamat runs.
package jira

import (
	"fmt"
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/sirupsen/logrus"
)

// sprintReportLimit caps how many issues one report analyzes.
const sprintReportLimit = 500

type Client struct {
	client      *gojira.Client
	baseURL     string
	pointsField string
}

// New builds a basic-auth client. Both credentials are required and checked
// before any network call.
func New(baseURL, user, token, pointsField string) (*Client, error) {
	if user == "" || token == "" {
		return nil, fmt.Errorf("jira credentials required; please set JIRA_USER and JIRA_TOKEN")
	}

	tp := gojira.BasicAuthTransport{Username: user, Password: token}
	client, err := gojira.NewClient(tp.Client(), baseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:      client,
		baseURL:     strings.TrimRight(baseURL, "/"),
		pointsField: pointsField,
	}, nil
}

// Issue is the subset of issue data the CLI renders.
type Issue struct {
	Key       string
	Summary   string
	Type      string
	Status    string
	Assignee  string
	Priority  string
	Points    float64
	HasPoints bool
	Created   time.Time
	Updated   time.Time
}

// SearchResult is one page of issues plus the total match count.
type SearchResult struct {
	JQL    string
	Issues []Issue
	Total  int
}

// SearchIssues runs a JQL query, scoping it to the project when the query
// has no project clause of its own.
func (c *Client) SearchIssues(query, project string, limit int) (*SearchResult, error) {
	jql := BuildJQL(query, project)

	issues, resp, err := c.client.Issue.Search(jql, &gojira.SearchOptions{
		MaxResults: limit,
		Fields: []string{
			"summary", "status", "assignee", "priority",
			"created", "updated", "issuetype", c.pointsField,
		},
	})
	if err != nil {
		logrus.WithError(err).WithField("jql", jql).Warn("jira search failed")
		return nil, err
	}

	result := &SearchResult{JQL: jql, Issues: make([]Issue, 0, len(issues))}
	if resp != nil {
		result.Total = resp.Total
	}
	for i := range issues {
		result.Issues = append(result.Issues, c.convert(&issues[i]))
	}
	return result, nil
}

func (c *Client) convert(issue *gojira.Issue) Issue {
	out := Issue{Key: issue.Key}
	fields := issue.Fields
	if fields == nil {
		return out
	}

	out.Summary = fields.Summary
	out.Type = fields.Type.Name
	if fields.Status != nil {
		out.Status = fields.Status.Name
	}
	if fields.Assignee != nil {
		out.Assignee = fields.Assignee.DisplayName
	}
	if fields.Priority != nil {
		out.Priority = fields.Priority.Name
	}
	out.Created = time.Time(fields.Created)
	out.Updated = time.Time(fields.Updated)

	if raw, ok := fields.Unknowns[c.pointsField]; ok {
		if points, ok := raw.(float64); ok {
			out.Points = points
			out.HasPoints = true
		}
	}
	return out
}

// Comment is a rendered issue comment.
type Comment struct {
	Author  string
	Created string
	Body    string
}

// IssueDetail is the full view of a single issue.
type IssueDetail struct {
	Issue
	Description string
	Reporter    string
	Comments    []Comment
	URL         string
}

// GetIssue fetches one issue with its description and comments.
func (c *Client) GetIssue(key string) (*IssueDetail, error) {
	issue, _, err := c.client.Issue.Get(key, nil)
	if err != nil {
		logrus.WithError(err).WithField("issue", key).Warn("failed to get jira issue")
		return nil, err
	}

	detail := &IssueDetail{
		Issue: c.convert(issue),
		URL:   fmt.Sprintf("%s/browse/%s", c.baseURL, key),
	}
	if issue.Fields == nil {
		return detail, nil
	}

	detail.Description = issue.Fields.Description
	if issue.Fields.Reporter != nil {
		detail.Reporter = issue.Fields.Reporter.DisplayName
	}
	if issue.Fields.Comments != nil {
		for _, comment := range issue.Fields.Comments.Comments {
			detail.Comments = append(detail.Comments, Comment{
				Author:  comment.Author.DisplayName,
				Created: comment.Created,
				Body:    comment.Body,
			})
		}
	}
	return detail, nil
}

// SprintReport aggregates story points over every issue matching the query.
func (c *Client) SprintReport(query, project string) (*Report, error) {
	result, err := c.SearchIssues(query, project, sprintReportLimit)
	if err != nil {
		return nil, err
	}
	return aggregate(result), nil
}

// BuildJQL scopes a query to a project unless the query already mentions
// one. Bare queries are wrapped so the project clause binds correctly.
func BuildJQL(query, project string) string {
	query = strings.TrimSpace(query)
	if project == "" || strings.Contains(strings.ToLower(query), "project") {
		return query
	}
	if query == "" {
		return fmt.Sprintf("project = %s", project)
	}

	upper := strings.ToUpper(query)
	if strings.HasPrefix(upper, "AND ") || strings.HasPrefix(upper, "OR ") {
		return fmt.Sprintf("project = %s %s", project, query)
	}
	return fmt.Sprintf("project = %s AND (%s)", project, query)
}
