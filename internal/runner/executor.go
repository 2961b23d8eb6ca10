package runner

import (
	"context"
	"fmt"
	"os"

	"github.com/sourceplane/flowci/internal/env"
	"github.com/sourceplane/flowci/internal/model"
)

// Executor runs the ordered step sequence for one job instance against that
// instance's own environment store, strictly sequentially: no step begins
// before the previous one completes.
type Executor struct {
	Commands CommandRunner
}

// RunInstance drives one instance from pending to a terminal state. On the
// first failed step the instance stops, records the failing step index, and
// is marked failed; no sibling instance is affected.
func (e *Executor) RunInstance(ctx context.Context, inst *model.JobInstance, steps []model.Step, store *env.Store) {
	inst.State = model.StateRunning
	inst.FailedStep = -1

	for i := range steps {
		if err := e.runStep(ctx, inst, i, steps[i], store); err != nil {
			inst.State = model.StateFailed
			inst.FailedStep = i
			inst.Detail = err.Error()
			return
		}
	}

	inst.State = model.StateSucceeded
}

func (e *Executor) runStep(ctx context.Context, inst *model.JobInstance, index int, step model.Step, store *env.Store) error {
	switch step.Kind() {
	case model.StepEnv:
		if step.If != "" {
			guard, err := model.ParseGuard(step.If)
			if err != nil {
				// The loader vets guards, so this is an internal fault
				return fmt.Errorf("step %s: %w", step.Label(index), err)
			}
			if !guard.Eval(guardLookup(inst.Coordinate, store)) {
				// Guard did not hold: the step succeeds as a no-op
				return nil
			}
		}
		store.Set(step.Set, step.Value)
		return nil

	case model.StepCommand:
		snapshot := store.Snapshot()
		args := resolveArgs(step.Args, snapshot)

		code, err := e.Commands.Execute(ctx, Invocation{
			Command: step.Command,
			Args:    args,
			Env:     snapshot,
			Redact:  secretValues(store, snapshot),
		})
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Label(index), err)
		}
		if code != 0 {
			return fmt.Errorf("step %s exited with status %d", step.Label(index), code)
		}
		return nil

	default:
		return fmt.Errorf("step %s: unknown step kind", step.Label(index))
	}
}

// guardLookup resolves guard keys against the matrix coordinate first, then
// the current environment store.
func guardLookup(coord model.Coordinate, store *env.Store) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := coord.Get(key); ok {
			return v, true
		}
		return store.Lookup(key)
	}
}

// resolveArgs substitutes ${KEY} references in argument fragments against
// the environment snapshot. Resolution happens at execution time, so writes
// by earlier steps of the same instance are visible; an absent key
// substitutes an empty string.
func resolveArgs(args []string, snapshot map[string]string) []string {
	resolved := make([]string, len(args))
	for i, arg := range args {
		resolved[i] = os.Expand(arg, func(key string) string {
			return snapshot[key]
		})
	}
	return resolved
}

// secretValues collects the secret values present in a snapshot so command
// runners can keep them out of any echoed output.
func secretValues(store *env.Store, snapshot map[string]string) []string {
	var values []string
	for k, v := range snapshot {
		if v != "" && store.IsSecret(k) {
			values = append(values, v)
		}
	}
	return values
}
