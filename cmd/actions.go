package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tiamat/pkg/repos"
)

// workflowPreset is one predefined workflow invocation. Presets are a static
// table dispatched through runPreset; no commands are generated at runtime.
type workflowPreset struct {
	workflow    string
	branch      string
	description string
	inputs      map[string]string
}

var deployEnvironments = map[string]workflowPreset{
	"staging": {
		workflow:    "deploy.preview.manual.yml",
		branch:      "release",
		description: "Deploy to staging EU",
		inputs:      map[string]string{"region": "eu-central-1", "stage": "staging"},
	},
	"prod": {
		workflow:    "deploy.live.manual.yml",
		branch:      "main",
		description: "Deploy to prod EU and US",
	},
	"demo": {
		workflow:    "deploy.preview.demo.yml",
		branch:      "release",
		description: "Deploy to demo EU and US",
	},
}

var runOpts struct {
	branch string
	inputs []string
}

var runCmd = &cobra.Command{
	Use:   "run <workflow> <repo>",
	Short: "Run a CI workflow",
	Long: `Run a CI workflow.

WORKFLOW can be the workflow ID, file name, or display name.

Examples:
  - run build.yml coralreef
  - run build.yml coralreef --branch develop
  - run "Build and Test" coralreef
  - run deploy.yml coralreef -i version=1.0.0 -i environment=production`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workflow := args[0]
		repo, err := repos.Resolve(args[1], cfg.Repositories)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		inputs := parseWorkflowInputs(cmd.OutOrStdout(), runOpts.inputs)
		if err := client.TriggerWorkflow(repo, workflow, runOpts.branch, inputs); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✅ Triggered workflow %s on %s (%s)", workflow, repo, runOpts.branch))
		return nil
	},
}

func newRunCommand() *cobra.Command {
	runCmd.Flags().StringVarP(&runOpts.branch, "branch", "b", "main", "Branch to run the workflow on")
	runCmd.Flags().StringArrayVarP(&runOpts.inputs, "input", "i", nil, "Workflow inputs in key=value format")
	return runCmd
}

var workflowsCmd = &cobra.Command{
	Use:   "workflows [repo]",
	Short: "List CI workflows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var repoArg string
		if len(args) > 0 {
			repoArg = args[0]
		}

		repoList, err := targetRepos(repoArg)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, repo := range repoList {
			workflows, err := client.ListWorkflows(repo)
			if err != nil {
				fmt.Fprintln(out, color.RedString("❌ %s: failed to list workflows: %v", repo, err))
				continue
			}

			fmt.Fprintf(out, "Workflows for %s:\n", repo)
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"ID", "Name", "Path", "State"})
			table.SetAutoWrapText(false)
			for _, w := range workflows {
				table.Append([]string{strconv.FormatInt(w.ID, 10), w.Name, w.Path, w.State})
			}
			table.Render()
		}
		return nil
	},
}

func newWorkflowsCommand() *cobra.Command {
	return workflowsCmd
}

var deployOpts struct {
	branch string
	inputs []string
}

var deployCmd = &cobra.Command{
	Use:   "deploy <environment> <repo>",
	Short: "Run a deploy workflow with predefined settings",
	Long: `Run a deploy workflow with predefined settings.

Available environments: ` + strings.Join(presetNames(deployEnvironments), ", ") + `

Examples:
  - deploy staging coralreef
  - deploy prod coralreef --branch custom-branch`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreset(cmd, "deploy", deployEnvironments, args[0], args[1], deployOpts.branch, deployOpts.inputs)
	},
}

func newDeployCommand() *cobra.Command {
	deployCmd.Flags().StringVarP(&deployOpts.branch, "branch", "b", "", "Override the preset branch")
	deployCmd.Flags().StringArrayVarP(&deployOpts.inputs, "input", "i", nil, "Additional inputs in key=value format")
	return deployCmd
}

// runPreset is the single dispatch path for every preset command.
func runPreset(cmd *cobra.Command, preset string, environments map[string]workflowPreset, environment, repoArg, branchOverride string, extraInputs []string) error {
	out := cmd.OutOrStdout()

	env, ok := environments[environment]
	if !ok {
		return fmt.Errorf("unknown environment %q for preset %q (available: %s)",
			environment, preset, strings.Join(presetNames(environments), ", "))
	}

	repo, err := repos.Resolve(repoArg, cfg.Repositories)
	if err != nil {
		return err
	}

	branch := env.branch
	if branchOverride != "" {
		branch = branchOverride
	}

	// Preset inputs first, command line inputs override.
	inputs := map[string]string{}
	for k, v := range env.inputs {
		inputs[k] = v
	}
	for k, v := range parseWorkflowInputs(out, extraInputs) {
		inputs[k] = v
	}

	fmt.Fprintln(out, color.New(color.FgBlue, color.Bold).Sprint("🚀 Running workflow:"))
	fmt.Fprintf(out, "  • Command: %s %s\n", preset, environment)
	fmt.Fprintf(out, "  • Description: %s\n", env.description)
	fmt.Fprintf(out, "  • Workflow: %s\n", env.workflow)
	fmt.Fprintf(out, "  • Repository: %s\n", repo)
	fmt.Fprintf(out, "  • Branch: %s\n", branch)
	if len(inputs) > 0 {
		fmt.Fprintln(out, "  • Inputs:")
		keys := make([]string, 0, len(inputs))
		for k := range inputs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "    - %s: %s\n", k, inputs[k])
		}
	}

	client, err := newGitHubClient(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.TriggerWorkflow(repo, env.workflow, branch, inputs); err != nil {
		return err
	}

	fmt.Fprintln(out, color.GreenString("✅ Triggered workflow %s on %s (%s)", env.workflow, repo, branch))
	return nil
}

// parseWorkflowInputs parses key=value tokens, warning about and discarding
// malformed ones.
func parseWorkflowInputs(out io.Writer, raw []string) map[string]string {
	inputs := map[string]string{}
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			fmt.Fprintln(out, color.YellowString("⚠️ Ignoring invalid input %q, use key=value format", item))
			continue
		}
		inputs[key] = value
	}
	return inputs
}

func presetNames(environments map[string]workflowPreset) []string {
	names := make([]string, 0, len(environments))
	for name := range environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
