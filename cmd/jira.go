package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tiamat/pkg/jira"
)

func newJiraClient() (*jira.Client, error) {
	return jira.New(cfg.JiraURL, cfg.JiraUser, cfg.JiraToken, cfg.JiraStoryPointsField)
}

var jiraOpts struct {
	project string
	limit   int
}

var jiraCmd = &cobra.Command{
	Use:   "jira <query>",
	Short: "Search for issues in Jira",
	Long: `Search for issues in Jira.

QUERY is a JQL query string. The default project from JIRA_DEFAULT_PROJECT
is applied when the query has no project clause.

Examples:
  - jira "priority = High" -p PROJ
  - jira "assignee = currentUser()"
  - jira "created >= -30d" --limit 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		project := jiraOpts.project
		if project == "" {
			project = cfg.JiraDefaultProject
		}
		if project == "" {
			fmt.Fprintln(out, color.YellowString("No project specified, searching across all projects."))
		}

		client, err := newJiraClient()
		if err != nil {
			return err
		}

		result, err := client.SearchIssues(args[0], project, jiraOpts.limit)
		if err != nil {
			return err
		}
		renderSearchResult(out, result)
		return nil
	},
}

func newJiraCommand() *cobra.Command {
	jiraCmd.Flags().StringVarP(&jiraOpts.project, "project", "p", "", "Project key")
	jiraCmd.Flags().IntVarP(&jiraOpts.limit, "limit", "n", 20, "Maximum number of results")
	return jiraCmd
}

func renderSearchResult(out io.Writer, result *jira.SearchResult) {
	if len(result.Issues) == 0 {
		fmt.Fprintln(out, color.YellowString("No issues found matching query: %s", result.JQL))
		return
	}

	var totalPoints float64
	estimated := 0
	for _, issue := range result.Issues {
		if issue.HasPoints {
			totalPoints += issue.Points
			estimated++
		}
	}

	fmt.Fprintln(out, color.New(color.FgBlue, color.Bold).Sprint("📊 Issue Statistics:"))
	fmt.Fprintf(out, "  • Total Issues: %d (showing %d)\n", result.Total, len(result.Issues))
	fmt.Fprintf(out, "  • Total Story Points: %.1f\n", totalPoints)
	fmt.Fprintf(out, "  • Issues Estimated: %d of %d\n", estimated, len(result.Issues))

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Key", "Points", "Type", "Summary", "Status", "Assignee", "Updated"})
	table.SetAutoWrapText(false)
	for _, issue := range result.Issues {
		points := "-"
		if issue.HasPoints {
			points = fmt.Sprintf("%.0f", issue.Points)
		}
		assignee := issue.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}
		updated := ""
		if !issue.Updated.IsZero() {
			updated = issue.Updated.Format("2006-01-02")
		}
		table.Append([]string{issue.Key, points, issue.Type, issue.Summary, issue.Status, assignee, updated})
	}
	table.Render()
}

var issueCmd = &cobra.Command{
	Use:   "issue <key>",
	Short: "Show one Jira issue in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newJiraClient()
		if err != nil {
			return err
		}

		detail, err := client.GetIssue(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.FgBlue, color.Bold).Sprintf("🎫 Issue %s", detail.Key))
		fmt.Fprintf(out, "%s\n\n", detail.Summary)

		table := tablewriter.NewWriter(out)
		table.SetAutoWrapText(false)
		table.Append([]string{"Type", detail.Type})
		table.Append([]string{"Status", detail.Status})
		assignee := detail.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}
		table.Append([]string{"Assignee", assignee})
		table.Append([]string{"Reporter", detail.Reporter})
		table.Append([]string{"Priority", detail.Priority})
		if !detail.Created.IsZero() {
			table.Append([]string{"Created", detail.Created.Format("2006-01-02 15:04")})
		}
		if !detail.Updated.IsZero() {
			table.Append([]string{"Updated", detail.Updated.Format("2006-01-02 15:04")})
		}
		table.Render()

		if detail.Description != "" {
			fmt.Fprintf(out, "\nDescription:\n%s\n", detail.Description)
		}
		if len(detail.Comments) > 0 {
			fmt.Fprintln(out, "\nComments:")
			for i, comment := range detail.Comments {
				if i == 5 {
					break
				}
				fmt.Fprintf(out, "%d. By %s on %s:\n   %s\n", i+1, comment.Author, comment.Created,
					strings.ReplaceAll(comment.Body, "\n", "\n   "))
			}
		}

		fmt.Fprintf(out, "\nView in browser: %s\n", detail.URL)
		return nil
	},
}

func newIssueCommand() *cobra.Command {
	return issueCmd
}

var sprintReportOpts struct {
	sprint  string
	project string
}

var sprintReportCmd = &cobra.Command{
	Use:   "sprint-report",
	Short: "Generate a sprint report with story point totals",
	Long: `Generate a concise sprint report with story point totals.

Examples:
  - sprint-report --sprint "Sprint 47"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project := sprintReportOpts.project
		if project == "" {
			project = cfg.JiraDefaultProject
		}

		client, err := newJiraClient()
		if err != nil {
			return err
		}

		query := fmt.Sprintf("sprint = %q AND status in (\"DONE\", \"CLOSED\", \"DEPLOYED\")", sprintReportOpts.sprint)
		report, err := client.SprintReport(query, project)
		if err != nil {
			return err
		}
		renderReport(cmd.OutOrStdout(), report, project)
		return nil
	},
}

func newSprintReportCommand() *cobra.Command {
	sprintReportCmd.Flags().StringVar(&sprintReportOpts.sprint, "sprint", "", "Sprint name (e.g. 'Sprint 47')")
	sprintReportCmd.Flags().StringVarP(&sprintReportOpts.project, "project", "p", "", "Project key")
	sprintReportCmd.MarkFlagRequired("sprint") //nolint
	return sprintReportCmd
}

func renderReport(out io.Writer, report *jira.Report, project string) {
	if report.Analyzed == 0 {
		fmt.Fprintln(out, color.YellowString("No issues found matching query: %s", report.JQL))
		return
	}

	fmt.Fprintln(out, color.New(color.FgBlue, color.Bold).Sprintf("🎯 Sprint Report: %d issues", report.Analyzed))
	if report.Total > report.Analyzed {
		fmt.Fprintln(out, color.YellowString("Warning: only analyzing %d of %d matching issues", report.Analyzed, report.Total))
	}

	fmt.Fprintln(out, "\n📊 Overview")
	fmt.Fprintf(out, "  • Total Issues: %d\n", report.Analyzed)
	fmt.Fprintf(out, "  • Total Story Points: %.1f\n", report.TotalPoints)
	fmt.Fprintf(out, "  • Average Points/Issue: %.2f\n", report.TotalPoints/float64(report.Analyzed))
	fmt.Fprintf(out, "  • Issues Estimated: %d (%.1f%%)\n", report.Estimated,
		float64(report.Estimated)/float64(report.Analyzed)*100)

	typeTable := tablewriter.NewWriter(out)
	typeTable.SetHeader([]string{"Type", "Count", "Points", "Avg", "% of Total"})
	for _, group := range report.ByType {
		avg := 0.0
		if group.Count > 0 {
			avg = group.Points / float64(group.Count)
		}
		typeTable.Append([]string{
			group.Name,
			fmt.Sprintf("%d", group.Count),
			fmt.Sprintf("%.1f", group.Points),
			fmt.Sprintf("%.1f", avg),
			fmt.Sprintf("%.1f%%", float64(group.Count)/float64(report.Analyzed)*100),
		})
	}
	typeTable.Render()

	statusTable := tablewriter.NewWriter(out)
	statusTable.SetHeader([]string{"Status", "Count", "Points", "% of Total"})
	for _, group := range report.ByStatus {
		statusTable.Append([]string{
			group.Name,
			fmt.Sprintf("%d", group.Count),
			fmt.Sprintf("%.1f", group.Points),
			fmt.Sprintf("%.1f%%", float64(group.Count)/float64(report.Analyzed)*100),
		})
	}
	statusTable.Render()

	fmt.Fprintf(out, "\nQuery: %s\n", report.JQL)
	if project != "" {
		fmt.Fprintf(out, "Project: %s\n", project)
	}
}
