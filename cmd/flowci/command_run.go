package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sourceplane/flowci/internal/config"
	"github.com/sourceplane/flowci/internal/git"
	"github.com/sourceplane/flowci/internal/loader"
	"github.com/sourceplane/flowci/internal/report"
	"github.com/sourceplane/flowci/internal/runner"
	"github.com/sourceplane/flowci/internal/trigger"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workflow for a trigger event",
	Long:  "Filter the event against the workflow's triggers and, if accepted, expand and execute all job instances concurrently.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkflow()
	},
}

func registerRunCommand(root *cobra.Command) {
	root.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&eventKind, "event", "e", "", "Event kind (default: push, or FLOWCI_EVENT)")
	runCmd.Flags().StringVarP(&branchName, "branch", "b", "", "Event branch (default: current git branch, or FLOWCI_BRANCH)")
	runCmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Actually execute commands (default is dry-run)")
	runCmd.Flags().StringVar(&workDir, "workdir", "", "Working directory for command steps")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write run report to file (json or yaml by extension)")
}

func runWorkflow() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Println("□ Loading workflow...")
	wf, err := loader.LoadWorkflow(workflowFile)
	if err != nil {
		return err
	}

	event := eventKind
	if event == "" {
		event = cfg.Event
	}

	branch := branchName
	if branch == "" {
		branch = cfg.Branch
	}
	if branch == "" {
		branch, err = git.CurrentBranch()
		if err != nil {
			return fmt.Errorf("no --branch given and %w", err)
		}
	}

	filter := trigger.NewFilter(wf.On)
	if !filter.Accepts(event, branch) {
		// Rejection is a no-op, not an error: the run never starts
		fmt.Printf("□ Trigger rejected: %s on %s matches no configured pattern, nothing to run\n", event, branch)
		return nil
	}

	dryRun := !executeMode
	if dryRun {
		fmt.Println("□ Dry-run mode enabled. Use --execute to run commands.")
	}

	dir := workDir
	if dir == "" {
		dir = cfg.WorkDir
	}

	commands := runner.NewExecRunner(dir, os.Stdout, os.Stderr, dryRun)
	r := runner.New(commands, config.Secrets(), os.Stderr)

	fmt.Printf("□ Running workflow %s (%s on %s)...\n", wf.Metadata.Name, event, branch)
	run := r.Run(ctx, wf, event, branch)

	verdict := report.Summarize(run)
	fmt.Println("\n" + report.Summary(verdict))

	if outputFile != "" {
		if err := report.Write(verdict, outputFile); err != nil {
			return err
		}
		fmt.Printf("✓ Report saved to: %s\n", outputFile)
	}

	if !verdict.Succeeded() {
		return fmt.Errorf("run failed: %d of %d job instances failed", len(verdict.Failed), len(verdict.Instances))
	}

	fmt.Println("✓ Run complete")
	return nil
}
