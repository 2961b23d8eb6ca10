package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourceplane/flowci/internal/model"
	"github.com/stretchr/testify/require"
)

func sampleRun() *model.Run {
	return &model.Run{
		ID:       "run-1",
		Workflow: "ci",
		Event:    "push",
		Branch:   "main",
		Instances: []*model.JobInstance{
			{Template: "build", State: model.StateSucceeded, FailedStep: -1},
			{
				Template:   "test",
				Coordinate: model.Coordinate{{Axis: "mode", Value: "release"}},
				State:      model.StateSucceeded,
				FailedStep: -1,
			},
			{
				Template:   "fmt",
				State:      model.StateFailed,
				FailedStep: 0,
				Detail:     "step cargo exited with status 1",
			},
		},
	}
}

func TestSummarize_FailedRun(t *testing.T) {
	verdict := Summarize(sampleRun())

	require.False(t, verdict.Succeeded())
	require.Equal(t, "failed", verdict.State)
	require.Len(t, verdict.Instances, 3)

	require.Len(t, verdict.Failed, 1)
	require.Equal(t, "fmt", verdict.Failed[0].Template)
	require.Equal(t, 0, verdict.Failed[0].FailedStep)
}

func TestSummarize_AllSucceeded(t *testing.T) {
	run := sampleRun()
	run.Instances = run.Instances[:2]

	verdict := Summarize(run)
	require.True(t, verdict.Succeeded())
	require.Equal(t, "succeeded", verdict.State)
	require.Empty(t, verdict.Failed)
}

// Partial successes inside a failed instance are not a pass: any non-final
// state counts against the verdict.
func TestSummarize_NonTerminalInstanceIsNotAPass(t *testing.T) {
	run := &model.Run{
		ID: "run-2",
		Instances: []*model.JobInstance{
			{Template: "build", State: model.StateRunning, FailedStep: -1},
		},
	}

	verdict := Summarize(run)
	require.False(t, verdict.Succeeded())
}

func TestSummary_ListsEveryInstance(t *testing.T) {
	out := Summary(Summarize(sampleRun()))

	require.Contains(t, out, "✓ build")
	require.Contains(t, out, "✓ test[mode=release]")
	require.Contains(t, out, "✗ fmt (step 0: step cargo exited with status 1)")
	require.Contains(t, out, "Verdict: failed (2/3 instances succeeded)")
}

func TestWrite_JSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	verdict := Summarize(sampleRun())

	require.NoError(t, Write(verdict, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Verdict
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, verdict.State, decoded.State)
	require.Len(t, decoded.Failed, 1)
	require.Equal(t, "mode", decoded.Instances[1].Coordinate[0].Axis)
}

func TestWrite_YAMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, Write(Summarize(sampleRun()), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "state: failed")
}
