package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourceplane/flowci/internal/model"
	"gopkg.in/yaml.v3"
)

// Verdict is the run-level result: succeeded iff every job instance
// succeeded, otherwise failed with the failing instances listed for
// diagnostics. Pure read-side aggregation; nothing is retried here.
type Verdict struct {
	RunID     string           `json:"runId" yaml:"runId"`
	Workflow  string           `json:"workflow" yaml:"workflow"`
	Event     string           `json:"event" yaml:"event"`
	Branch    string           `json:"branch" yaml:"branch"`
	State     string           `json:"state" yaml:"state"`
	Instances []InstanceResult `json:"instances" yaml:"instances"`
	Failed    []InstanceResult `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// InstanceResult is the externally visible outcome of one job instance
type InstanceResult struct {
	Template   string           `json:"template" yaml:"template"`
	Coordinate model.Coordinate `json:"coordinate,omitempty" yaml:"coordinate,omitempty"`
	State      string           `json:"state" yaml:"state"`
	FailedStep int              `json:"failedStep" yaml:"failedStep"` // -1 when no step failed
	Detail     string           `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summarize aggregates a run into its verdict
func Summarize(run *model.Run) *Verdict {
	verdict := &Verdict{
		RunID:     run.ID,
		Workflow:  run.Workflow,
		Event:     run.Event,
		Branch:    run.Branch,
		State:     model.StateSucceeded.String(),
		Instances: make([]InstanceResult, 0, len(run.Instances)),
	}

	for _, inst := range run.Instances {
		result := InstanceResult{
			Template:   inst.Template,
			Coordinate: inst.Coordinate,
			State:      inst.State.String(),
			FailedStep: inst.FailedStep,
			Detail:     inst.Detail,
		}
		verdict.Instances = append(verdict.Instances, result)

		if inst.State != model.StateSucceeded {
			verdict.State = model.StateFailed.String()
			verdict.Failed = append(verdict.Failed, result)
		}
	}

	return verdict
}

// Succeeded reports whether the verdict is a pass
func (v *Verdict) Succeeded() bool {
	return v.State == model.StateSucceeded.String()
}

// RenderJSON renders the verdict as indented JSON
func RenderJSON(v *Verdict) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// RenderYAML renders the verdict as YAML
func RenderYAML(v *Verdict) ([]byte, error) {
	return yaml.Marshal(v)
}

// Write writes the verdict to a file, JSON or YAML based on extension
func Write(v *Verdict, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = RenderYAML(v)
	default:
		data, err = RenderJSON(v)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}

	return nil
}
