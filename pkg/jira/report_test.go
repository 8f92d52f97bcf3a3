package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJQL(t *testing.T) {
	tests := []struct {
		query   string
		project string
		want    string
	}{
		{"", "", ""},
		{"", "PROJ", "project = PROJ"},
		{"priority = High", "PROJ", "project = PROJ AND (priority = High)"},
		{"AND sprint = \"Sprint 47\"", "PROJ", "project = PROJ AND sprint = \"Sprint 47\""},
		{"project = OTHER AND priority = High", "PROJ", "project = OTHER AND priority = High"},
		{"priority = High", "", "priority = High"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, BuildJQL(tc.query, tc.project), "query %q project %q", tc.query, tc.project)
	}
}

func TestAggregate(t *testing.T) {
	result := &SearchResult{
		JQL:   "project = PROJ",
		Total: 10,
		Issues: []Issue{
			{Key: "PROJ-1", Type: "Story", Status: "Done", Points: 5, HasPoints: true},
			{Key: "PROJ-2", Type: "Story", Status: "In Progress", Points: 3, HasPoints: true},
			{Key: "PROJ-3", Type: "Bug", Status: "Done"},
			{Key: "PROJ-4", Type: "Story", Status: "Backlog", Points: 2, HasPoints: true},
		},
	}

	report := aggregate(result)

	assert.Equal(t, 10, report.Total)
	assert.Equal(t, 4, report.Analyzed)
	assert.InDelta(t, 10.0, report.TotalPoints, 0.001)
	assert.Equal(t, 3, report.Estimated)

	// Most common issue type first.
	require.Len(t, report.ByType, 2)
	assert.Equal(t, "Story", report.ByType[0].Name)
	assert.Equal(t, 3, report.ByType[0].Count)
	assert.InDelta(t, 10.0, report.ByType[0].Points, 0.001)
	assert.Equal(t, "Bug", report.ByType[1].Name)

	// Statuses in approximate workflow order.
	require.Len(t, report.ByStatus, 3)
	assert.Equal(t, "Backlog", report.ByStatus[0].Name)
	assert.Equal(t, "In Progress", report.ByStatus[1].Name)
	assert.Equal(t, "Done", report.ByStatus[2].Name)
	assert.Equal(t, 2, report.ByStatus[2].Count)
}

func TestAggregateUnknownStatusSortsLast(t *testing.T) {
	result := &SearchResult{
		Issues: []Issue{
			{Key: "PROJ-1", Type: "Story", Status: "Weird State"},
			{Key: "PROJ-2", Type: "Story", Status: "Done"},
		},
	}

	report := aggregate(result)

	require.Len(t, report.ByStatus, 2)
	assert.Equal(t, "Done", report.ByStatus[0].Name)
	assert.Equal(t, "Weird State", report.ByStatus[1].Name)
}

func TestAggregateMissingNamesGroupAsUnknown(t *testing.T) {
	result := &SearchResult{
		Issues: []Issue{{Key: "PROJ-1"}},
	}

	report := aggregate(result)

	require.Len(t, report.ByType, 1)
	assert.Equal(t, "Unknown", report.ByType[0].Name)
}
