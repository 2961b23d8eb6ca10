package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sourceplane/flowci/internal/model"
	"github.com/sourceplane/flowci/internal/normalize"
	"github.com/sourceplane/flowci/internal/schema"
	"gopkg.in/yaml.v3"
)

// LoadError marks a workflow document as structurally invalid. It is fatal
// to the entire run and always surfaces before any job instance begins;
// instance-local failures never use this type.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("invalid workflow %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadWorkflow reads, schema-validates, and normalizes a workflow YAML file.
// Any failure is returned as a *LoadError.
func LoadWorkflow(path string) (*model.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read workflow file: %w", err)}
	}

	wf, err := ParseWorkflow(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return wf, nil
}

// ParseWorkflow validates and decodes workflow YAML from memory
func ParseWorkflow(data []byte) (*model.Workflow, error) {
	// Decode generically first so the schema sees the raw document shape,
	// then roundtrip through JSON to get the value types the validator expects.
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse workflow YAML: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert workflow for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert workflow for validation: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateWorkflow(doc); err != nil {
		return nil, fmt.Errorf("workflow failed schema validation: %w", err)
	}

	var wf model.Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to decode workflow: %w", err)
	}

	return normalize.Workflow(&wf)
}
