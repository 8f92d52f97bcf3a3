package jira

import (
	"sort"
	"strings"
)

// GroupStats is the issue count and story-point sum for one group.
type GroupStats struct {
	Name   string
	Count  int
	Points float64
}

// Report is the sprint-report aggregate over a set of issues.
type Report struct {
	JQL         string
	Total       int
	Analyzed    int
	TotalPoints float64
	Estimated   int
	ByType      []GroupStats
	ByStatus    []GroupStats
}

// statusOrder approximates a workflow's stage ordering; unknown statuses
// sort last.
var statusOrder = []string{
	"backlog", "to do", "open", "in progress",
	"review", "testing", "done", "closed", "deployed", "resolved",
}

func aggregate(result *SearchResult) *Report {
	report := &Report{
		JQL:      result.JQL,
		Total:    result.Total,
		Analyzed: len(result.Issues),
	}

	byType := map[string]*GroupStats{}
	byStatus := map[string]*GroupStats{}

	group := func(groups map[string]*GroupStats, name string, issue Issue) {
		if name == "" {
			name = "Unknown"
		}
		stats, ok := groups[name]
		if !ok {
			stats = &GroupStats{Name: name}
			groups[name] = stats
		}
		stats.Count++
		if issue.HasPoints {
			stats.Points += issue.Points
		}
	}

	for _, issue := range result.Issues {
		if issue.HasPoints {
			report.TotalPoints += issue.Points
			report.Estimated++
		}
		group(byType, issue.Type, issue)
		group(byStatus, issue.Status, issue)
	}

	report.ByType = collect(byType)
	sort.SliceStable(report.ByType, func(i, j int) bool {
		return report.ByType[i].Count > report.ByType[j].Count
	})

	report.ByStatus = collect(byStatus)
	sort.SliceStable(report.ByStatus, func(i, j int) bool {
		return statusRank(report.ByStatus[i].Name) < statusRank(report.ByStatus[j].Name)
	})

	return report
}

func collect(groups map[string]*GroupStats) []GroupStats {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]GroupStats, 0, len(groups))
	for _, name := range names {
		out = append(out, *groups[name])
	}
	return out
}

func statusRank(status string) int {
	lowered := strings.ToLower(status)
	for i, ordered := range statusOrder {
		if strings.Contains(lowered, ordered) {
			return i
		}
	}
	return len(statusOrder)
}
