package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Invocation is one resolved external command dispatch: the command, its
// argument list with environment references already substituted, and the
// instance's environment snapshot at dispatch time.
type Invocation struct {
	Command string
	Args    []string
	Env     map[string]string
	// Redact lists secret values that must never be echoed
	Redact []string
}

// CommandRunner is the external command-execution collaborator. The engine
// interprets nothing but the exit status; output handling belongs to the
// implementation.
type CommandRunner interface {
	Execute(ctx context.Context, inv Invocation) (exitCode int, err error)
}

// ExecRunner dispatches invocations as real processes. In dry-run mode it
// echoes the resolved command line (secrets masked) without executing.
type ExecRunner struct {
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
	DryRun  bool
}

// NewExecRunner creates a process-backed command runner
func NewExecRunner(workDir string, stdout, stderr io.Writer, dryRun bool) *ExecRunner {
	return &ExecRunner{
		WorkDir: workDir,
		Stdout:  stdout,
		Stderr:  stderr,
		DryRun:  dryRun,
	}
}

// Execute runs the command with the snapshot layered over the process
// environment and translates its exit status. A non-zero exit is not an
// error here; failing to start the process is.
func (r *ExecRunner) Execute(ctx context.Context, inv Invocation) (int, error) {
	if r.DryRun {
		fmt.Fprintf(r.Stdout, "    %s\n", maskLine(inv))
		return 0, nil
	}

	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...)
	cmd.Dir = r.WorkDir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = append(os.Environ(), envPairs(inv.Env)...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to start %s: %w", inv.Command, err)
	}

	return 0, nil
}

// envPairs renders a snapshot as KEY=VALUE pairs in sorted key order so the
// child process environment is deterministic.
func envPairs(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+env[k])
	}
	return pairs
}

// maskLine renders the command line with secret values replaced
func maskLine(inv Invocation) string {
	line := strings.Join(append([]string{inv.Command}, inv.Args...), " ")
	for _, secret := range inv.Redact {
		if secret != "" {
			line = strings.ReplaceAll(line, secret, "***")
		}
	}
	return line
}
