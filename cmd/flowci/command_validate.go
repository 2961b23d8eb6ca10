package main

import (
	"fmt"

	"github.com/sourceplane/flowci/internal/expand"
	"github.com/sourceplane/flowci/internal/loader"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a workflow YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateWorkflow()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validateWorkflow() error {
	fmt.Println("□ Validating workflow...")
	wf, err := loader.LoadWorkflow(workflowFile)
	if err != nil {
		return err
	}

	instances := 0
	for i := range wf.Jobs {
		instances += len(expand.Coordinates(&wf.Jobs[i]))
	}

	fmt.Printf("✓ Workflow %s is valid: %d jobs, %d job instances\n",
		wf.Metadata.Name, len(wf.Jobs), instances)
	return nil
}
