package runner

import (
	"context"
	"sync"
	"testing"

	"github.com/sourceplane/flowci/internal/env"
	"github.com/sourceplane/flowci/internal/model"
	"github.com/stretchr/testify/require"
)

// fakeCommandRunner records invocations and lets tests choose exit codes
// per command.
type fakeCommandRunner struct {
	mu       sync.Mutex
	calls    []Invocation
	exitCode func(inv Invocation) int
}

func (f *fakeCommandRunner) Execute(ctx context.Context, inv Invocation) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()

	if f.exitCode != nil {
		return f.exitCode(inv), nil
	}
	return 0, nil
}

func (f *fakeCommandRunner) invocations() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Invocation(nil), f.calls...)
}

func newInstance(template string, coord model.Coordinate) *model.JobInstance {
	return &model.JobInstance{
		Template:   template,
		Coordinate: coord,
		State:      model.StatePending,
		FailedStep: -1,
	}
}

func TestExecutor_EnvWriteVisibleToLaterSteps(t *testing.T) {
	fake := &fakeCommandRunner{}
	executor := &Executor{Commands: fake}

	inst := newInstance("build", nil)
	store := env.NewStore(nil, nil)
	steps := []model.Step{
		{Set: "MODE", Value: "--release"},
		{Command: "cargo", Args: []string{"build", "${MODE}"}},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	require.Equal(t, model.StateSucceeded, inst.State)
	require.Equal(t, -1, inst.FailedStep)

	calls := fake.invocations()
	require.Len(t, calls, 1)
	require.Equal(t, []string{"build", "--release"}, calls[0].Args)
	require.Equal(t, "--release", calls[0].Env["MODE"])
}

func TestExecutor_GuardedWriteSkippedWhenGuardFalse(t *testing.T) {
	fake := &fakeCommandRunner{}
	executor := &Executor{Commands: fake}

	inst := newInstance("test", model.Coordinate{{Axis: "mode", Value: "debug"}})
	store := env.NewStore(nil, nil)
	steps := []model.Step{
		{If: "mode == release", Set: "MODE", Value: "--release"},
		{Command: "cargo", Args: []string{"test", "${MODE}"}},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	// Guard false: the step succeeds as a no-op and the key stays absent
	require.Equal(t, model.StateSucceeded, inst.State)

	calls := fake.invocations()
	require.Len(t, calls, 1)
	require.Equal(t, []string{"test", ""}, calls[0].Args)
	_, present := calls[0].Env["MODE"]
	require.False(t, present)
}

func TestExecutor_GuardReadsCoordinateBeforeStore(t *testing.T) {
	fake := &fakeCommandRunner{}
	executor := &Executor{Commands: fake}

	inst := newInstance("test", model.Coordinate{{Axis: "mode", Value: "release"}})
	store := env.NewStore(nil, nil)
	steps := []model.Step{
		{If: "mode == release", Set: "MODE", Value: "--release"},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	require.Equal(t, model.StateSucceeded, inst.State)
	require.Equal(t, "--release", store.Get("MODE"))
}

func TestExecutor_GuardReadsEnvStore(t *testing.T) {
	fake := &fakeCommandRunner{}
	executor := &Executor{Commands: fake}

	inst := newInstance("build", nil)
	store := env.NewStore(map[string]string{"PROFILE": "ci"}, nil)
	steps := []model.Step{
		{If: "PROFILE == ci", Set: "VERBOSE", Value: "1"},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	require.Equal(t, model.StateSucceeded, inst.State)
	require.Equal(t, "1", store.Get("VERBOSE"))
}

func TestExecutor_FailFastStopsAtFirstFailedStep(t *testing.T) {
	fake := &fakeCommandRunner{
		exitCode: func(inv Invocation) int {
			if inv.Command == "fail" {
				return 101
			}
			return 0
		},
	}
	executor := &Executor{Commands: fake}

	inst := newInstance("build", nil)
	store := env.NewStore(nil, nil)
	steps := []model.Step{
		{Command: "ok"},
		{Command: "fail"},
		{Command: "never"},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	require.Equal(t, model.StateFailed, inst.State)
	require.Equal(t, 1, inst.FailedStep)
	require.Contains(t, inst.Detail, "status 101")

	// The step after the failure never executes
	calls := fake.invocations()
	require.Len(t, calls, 2)
	require.Equal(t, "ok", calls[0].Command)
	require.Equal(t, "fail", calls[1].Command)
}

func TestExecutor_ArgReferencesResolveAtExecutionTime(t *testing.T) {
	fake := &fakeCommandRunner{}
	executor := &Executor{Commands: fake}

	inst := newInstance("build", nil)
	store := env.NewStore(map[string]string{"TARGET": "debug"}, nil)
	steps := []model.Step{
		{Command: "first", Args: []string{"${TARGET}"}},
		{Set: "TARGET", Value: "release"},
		{Command: "second", Args: []string{"${TARGET}"}},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	calls := fake.invocations()
	require.Len(t, calls, 2)
	require.Equal(t, []string{"debug"}, calls[0].Args)
	require.Equal(t, []string{"release"}, calls[1].Args)
}

func TestExecutor_SecretValuesMarkedForRedaction(t *testing.T) {
	fake := &fakeCommandRunner{}
	executor := &Executor{Commands: fake}

	inst := newInstance("publish", nil)
	store := env.NewStore(nil, map[string]string{"TOKEN": "s3cr3t"})
	steps := []model.Step{
		{Command: "deploy", Args: []string{"--token", "${TOKEN}"}},
	}

	executor.RunInstance(context.Background(), inst, steps, store)

	calls := fake.invocations()
	require.Len(t, calls, 1)
	require.Equal(t, "s3cr3t", calls[0].Env["TOKEN"])
	require.Contains(t, calls[0].Redact, "s3cr3t")
}
