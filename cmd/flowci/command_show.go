package main

import (
	"fmt"
	"strings"

	"github.com/sourceplane/flowci/internal/expand"
	"github.com/sourceplane/flowci/internal/loader"
	"github.com/sourceplane/flowci/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show [job-name]",
	Aliases: []string{"jobs"},
	Short:   "List jobs and their expanded instances",
	Long:    "List the workflow's jobs with their matrices and expanded instances. Use 'flowci show <name>' for details on one job.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showJobs(args)
	},
}

func registerShowCommand(root *cobra.Command) {
	root.AddCommand(showCmd)

	showCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Show steps and instance coordinates")
}

func showJobs(args []string) error {
	wf, err := loader.LoadWorkflow(workflowFile)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		for i := range wf.Jobs {
			if wf.Jobs[i].Name == args[0] {
				printJobDetails(&wf.Jobs[i])
				return nil
			}
		}
		return fmt.Errorf("job not found: %s", args[0])
	}

	fmt.Printf("Workflow: %s\n", wf.Metadata.Name)
	if len(wf.On) > 0 {
		fmt.Println("Triggers:")
		for kind, rule := range wf.On {
			fmt.Printf("  %s: %s\n", kind, strings.Join(rule.Branches, ", "))
		}
	}

	fmt.Println("Jobs:")
	for i := range wf.Jobs {
		job := &wf.Jobs[i]
		coords := expand.Coordinates(job)
		if longFormat {
			printJobDetails(job)
		} else {
			fmt.Printf("  %s (steps: %d, instances: %d)\n", job.Name, len(job.Steps), len(coords))
		}
	}

	if !longFormat {
		fmt.Println("\nRun 'flowci show <name>' for detailed information")
	}

	return nil
}

func printJobDetails(job *model.JobTemplate) {
	coords := expand.Coordinates(job)

	fmt.Printf("\n[Job] %s\n", job.Name)
	if len(job.Matrix.Axes) > 0 {
		fmt.Println("  Matrix:")
		for _, axis := range job.Matrix.Axes {
			fmt.Printf("    %s: %s\n", axis.Name, strings.Join(axis.Values, ", "))
		}
	}

	fmt.Printf("  Instances (%d):\n", len(coords))
	for _, coord := range coords {
		name := job.Name
		if len(coord) > 0 {
			name = fmt.Sprintf("%s[%s]", job.Name, coord.String())
		}
		fmt.Printf("    %s\n", name)
	}

	fmt.Printf("  Steps (%d):\n", len(job.Steps))
	for i, step := range job.Steps {
		switch step.Kind() {
		case model.StepEnv:
			line := fmt.Sprintf("set %s=%s", step.Set, step.Value)
			if step.If != "" {
				line += fmt.Sprintf(" (if %s)", step.If)
			}
			fmt.Printf("    %d. %s\n", i, line)
		case model.StepCommand:
			fmt.Printf("    %d. %s %s\n", i, step.Command, strings.Join(step.Args, " "))
		}
	}
}
