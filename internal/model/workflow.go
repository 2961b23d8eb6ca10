package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Workflow is the top-level declarative pipeline document.
// It is immutable after load; every job instance reads from it concurrently.
type Workflow struct {
	APIVersion string                 `yaml:"apiVersion" json:"apiVersion"`
	Kind       string                 `yaml:"kind" json:"kind"`
	Metadata   Metadata               `yaml:"metadata" json:"metadata"`
	On         map[string]TriggerRule `yaml:"on" json:"on"`
	Env        map[string]string      `yaml:"env" json:"env"`
	Jobs       []JobTemplate          `yaml:"jobs" json:"jobs"`
}

// Metadata holds standard object metadata
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// TriggerRule lists the branch patterns accepted for one event kind
type TriggerRule struct {
	Branches []string `yaml:"branches" json:"branches"`
}

// JobTemplate is a declared unit of work: a name, an optional matrix, and an
// ordered step sequence.
type JobTemplate struct {
	Name   string `yaml:"name" json:"name"`
	Matrix Matrix `yaml:"matrix,omitempty" json:"matrix,omitempty"`
	Steps  []Step `yaml:"steps" json:"steps"`
}

// Matrix is an ordered set of independent axes. Axis declaration order is
// preserved through YAML decoding so that expansion order is reproducible
// across runs of the same document.
type Matrix struct {
	Axes []Axis `json:"axes,omitempty"`
}

// Axis is one matrix dimension with its ordered values
type Axis struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// IsZero reports whether the matrix declares no axes.
func (m Matrix) IsZero() bool {
	return len(m.Axes) == 0
}

// UnmarshalYAML decodes a YAML mapping into ordered axes. A plain
// map[string][]string would lose declaration order, which job naming and
// deterministic expansion depend on.
func (m *Matrix) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("matrix must be a mapping of axis name to value list")
	}

	m.Axes = make([]Axis, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		if valNode.Kind != yaml.SequenceNode {
			return fmt.Errorf("matrix axis %s must be a list of values", keyNode.Value)
		}

		axis := Axis{
			Name:   keyNode.Value,
			Values: make([]string, 0, len(valNode.Content)),
		}
		for _, item := range valNode.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("matrix axis %s has a non-scalar value", keyNode.Value)
			}
			axis.Values = append(axis.Values, item.Value)
		}

		m.Axes = append(m.Axes, axis)
	}

	return nil
}

// MarshalYAML renders the matrix back as a mapping in declaration order
func (m Matrix) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, axis := range m.Axes {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: axis.Name}
		valNode := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range axis.Values {
			valNode.Content = append(valNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: v})
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// StepKind discriminates the two step shapes
type StepKind int

const (
	StepInvalid StepKind = iota
	StepEnv              // conditional environment mutation
	StepCommand          // external command invocation
)

// Step is a single execution unit within a job instance: either an
// environment mutation (set/value with an optional guard) or a command
// invocation (command/args). Exactly one of the two shapes must be present;
// the loader rejects mixed or empty steps before any instance runs.
type Step struct {
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	If      string   `yaml:"if,omitempty" json:"if,omitempty"`
	Set     string   `yaml:"set,omitempty" json:"set,omitempty"`
	Value   string   `yaml:"value,omitempty" json:"value,omitempty"`
	Command string   `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// Kind classifies the step by which fields are populated
func (s Step) Kind() StepKind {
	switch {
	case s.Set != "" && s.Command == "":
		return StepEnv
	case s.Command != "" && s.Set == "":
		return StepCommand
	default:
		return StepInvalid
	}
}

// Label returns a display name for the step at the given index
func (s Step) Label(index int) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Command != "":
		return s.Command
	case s.Set != "":
		return "set " + s.Set
	default:
		return fmt.Sprintf("step %d", index)
	}
}
