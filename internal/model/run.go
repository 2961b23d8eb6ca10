package model

import "strings"

// State is the lifecycle of a job instance
type State int

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

// String returns the lowercase state name
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AxisValue pins one matrix axis to one value
type AxisValue struct {
	Axis  string `json:"axis"`
	Value string `json:"value"`
}

// Coordinate identifies a job instance: one value per matrix axis, in axis
// declaration order. A template without a matrix has the empty coordinate.
type Coordinate []AxisValue

// Get returns the value selected for an axis
func (c Coordinate) Get(axis string) (string, bool) {
	for _, av := range c {
		if av.Axis == axis {
			return av.Value, true
		}
	}
	return "", false
}

// Map returns the coordinate as an axis→value map
func (c Coordinate) Map() map[string]string {
	m := make(map[string]string, len(c))
	for _, av := range c {
		m[av.Axis] = av.Value
	}
	return m
}

// String renders the coordinate as "axis=value,axis=value" in axis order
func (c Coordinate) String() string {
	if len(c) == 0 {
		return ""
	}
	parts := make([]string, len(c))
	for i, av := range c {
		parts[i] = av.Axis + "=" + av.Value
	}
	return strings.Join(parts, ",")
}

// JobInstance is one concrete execution of a job template for one matrix
// coordinate. Each instance exclusively owns its environment store; the
// struct here records only the identity and the outcome.
type JobInstance struct {
	Template   string     `json:"template"`
	Coordinate Coordinate `json:"coordinate,omitempty"`
	State      State      `json:"-"`
	FailedStep int        `json:"failedStep"` // index of the first failed step, -1 if none
	Detail     string     `json:"detail,omitempty"`
}

// ID returns the stable instance identifier, e.g. "test[mode=release]"
func (ji *JobInstance) ID() string {
	if len(ji.Coordinate) == 0 {
		return ji.Template
	}
	return ji.Template + "[" + ji.Coordinate.String() + "]"
}

// Run is the complete set of job instances produced and executed for one
// accepted trigger event.
type Run struct {
	ID        string         `json:"id"`
	Workflow  string         `json:"workflow"`
	Event     string         `json:"event"`
	Branch    string         `json:"branch"`
	Instances []*JobInstance `json:"instances"`
}

// Failed returns the instances that reached the failed state
func (r *Run) Failed() []*JobInstance {
	var failed []*JobInstance
	for _, inst := range r.Instances {
		if inst.State == StateFailed {
			failed = append(failed, inst)
		}
	}
	return failed
}

// Succeeded reports whether every instance reached the succeeded state
func (r *Run) Succeeded() bool {
	for _, inst := range r.Instances {
		if inst.State != StateSucceeded {
			return false
		}
	}
	return true
}
