package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed workflow.schema.yaml
var workflowSchemaYAML []byte

// Validator handles JSON schema validation of raw workflow documents
type Validator struct {
	workflowSchema *jsonschema.Schema
}

// NewValidator compiles the embedded workflow schema
func NewValidator() (*Validator, error) {
	schema, err := compileSchema(workflowSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to compile workflow schema: %w", err)
	}
	return &Validator{workflowSchema: schema}, nil
}

// ValidateWorkflow validates a decoded workflow document against the schema.
// The document must be the generic form produced by yaml.Unmarshal into
// interface{}, not the typed model.
func (v *Validator) ValidateWorkflow(doc interface{}) error {
	if v.workflowSchema == nil {
		return fmt.Errorf("workflow schema not loaded")
	}
	return v.workflowSchema.Validate(doc)
}

// compileSchema compiles a schema given as YAML (or JSON, which is a YAML subset)
func compileSchema(data []byte) (*jsonschema.Schema, error) {
	// Parse YAML to interface{} first, then re-encode as JSON for the compiler
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schema, err := jsonschema.CompileString("workflow.schema.json", string(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return schema, nil
}
