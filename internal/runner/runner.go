package runner

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sourceplane/flowci/internal/env"
	"github.com/sourceplane/flowci/internal/expand"
	"github.com/sourceplane/flowci/internal/model"
)

// Runner schedules every expanded job instance of a workflow. Instances run
// concurrently and independently: a failing instance never cancels a
// sibling, and the run completes only when every instance has reached a
// terminal state.
type Runner struct {
	Commands CommandRunner
	Secrets  map[string]string
	Stderr   io.Writer
}

// New creates a runner. Secrets are injected into every instance's
// environment store; their values never appear in engine output.
func New(commands CommandRunner, secrets map[string]string, stderr io.Writer) *Runner {
	return &Runner{
		Commands: commands,
		Secrets:  secrets,
		Stderr:   stderr,
	}
}

// Run expands all job templates of the workflow and executes the resulting
// instances. Each instance gets a private environment store seeded from the
// workflow's baseline plus the configured secrets; there is no shared
// mutable state between instances, so no ordering between them is needed.
func (r *Runner) Run(ctx context.Context, wf *model.Workflow, event, branch string) *model.Run {
	run := &model.Run{
		ID:       uuid.NewString(),
		Workflow: wf.Metadata.Name,
		Event:    event,
		Branch:   branch,
	}

	type work struct {
		inst  *model.JobInstance
		steps []model.Step
	}
	var pending []work

	for i := range wf.Jobs {
		tmpl := &wf.Jobs[i]
		coords := expand.Coordinates(tmpl)
		if len(coords) == 0 {
			// Documented policy: an axis with zero values contributes zero
			// instances. Warn so it is not mistaken for a silent drop.
			fmt.Fprintf(r.Stderr, "! job %s: matrix axis has no values, zero instances scheduled\n", tmpl.Name)
			continue
		}

		for _, coord := range coords {
			inst := &model.JobInstance{
				Template:   tmpl.Name,
				Coordinate: coord,
				State:      model.StatePending,
				FailedStep: -1,
			}
			run.Instances = append(run.Instances, inst)
			pending = append(pending, work{inst: inst, steps: tmpl.Steps})
		}
	}

	executor := &Executor{Commands: r.Commands}

	var wg sync.WaitGroup
	for _, w := range pending {
		wg.Add(1)
		go func(w work) {
			defer wg.Done()
			store := env.NewStore(wf.Env, r.Secrets)
			executor.RunInstance(ctx, w.inst, w.steps, store)
		}(w)
	}
	wg.Wait()

	return run
}
