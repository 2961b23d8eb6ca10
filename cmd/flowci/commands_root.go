package main

import "github.com/spf13/cobra"

var (
	workflowFile string
	outputFile   string
	eventKind    string
	branchName   string
	executeMode  bool
	workDir      string
	longFormat   bool
)

var rootCmd = &cobra.Command{
	Use:   "flowci",
	Short: "Workflow engine: declarative pipeline → concurrent run",
	Long:  "flowci interprets declarative CI workflows: trigger filtering, matrix expansion into job instances, and concurrent failure-isolated execution",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workflowFile, "workflow", "w", "workflow.yaml", "Workflow file path")

	registerRunCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerShowCommand(rootCmd)
}
