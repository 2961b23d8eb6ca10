package normalize

import (
	"fmt"

	"github.com/sourceplane/flowci/internal/model"
)

// Workflow transforms a raw decoded workflow into canonical form and rejects
// structural problems the schema cannot express: ambiguous step shapes,
// malformed guards, duplicate job names. Anything rejected here is fatal to
// the whole run; no instance starts from a spec that cannot be fully trusted.
func Workflow(wf *model.Workflow) (*model.Workflow, error) {
	if wf == nil {
		return nil, fmt.Errorf("workflow cannot be nil")
	}

	if wf.On == nil {
		wf.On = make(map[string]model.TriggerRule)
	}
	if wf.Env == nil {
		wf.Env = make(map[string]string)
	}

	seen := make(map[string]bool, len(wf.Jobs))
	for i := range wf.Jobs {
		job := &wf.Jobs[i]

		if job.Name == "" {
			return nil, fmt.Errorf("job %d must have a name", i)
		}
		if seen[job.Name] {
			return nil, fmt.Errorf("duplicate job name %q", job.Name)
		}
		seen[job.Name] = true

		for si := range job.Steps {
			if err := normalizeStep(&job.Steps[si]); err != nil {
				return nil, fmt.Errorf("job %s step %d: %w", job.Name, si, err)
			}
		}
	}

	return wf, nil
}

// normalizeStep checks that a step is exactly one of the two recognized
// shapes and that its guard, if any, parses.
func normalizeStep(step *model.Step) error {
	switch step.Kind() {
	case model.StepEnv:
		// Guards only apply to environment mutations
	case model.StepCommand:
		if step.If != "" {
			return fmt.Errorf("command steps do not support an if guard")
		}
		if step.Value != "" {
			return fmt.Errorf("value is only valid on set steps")
		}
	default:
		if step.Set != "" && step.Command != "" {
			return fmt.Errorf("step declares both set and command")
		}
		return fmt.Errorf("unknown step kind: step must declare set or command")
	}

	if step.If != "" {
		if _, err := model.ParseGuard(step.If); err != nil {
			return err
		}
	}

	if step.Kind() == model.StepEnv && len(step.Args) > 0 {
		return fmt.Errorf("args are only valid on command steps")
	}

	return nil
}
