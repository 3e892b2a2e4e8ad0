package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// argValidator checks tool arguments against a compiled JSON Schema.
type argValidator struct {
	schema *jsonschema.Schema
}

func newArgValidator(schema map[string]any) (*argValidator, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	// jsonschema.UnmarshalJSON keeps numbers as json.Number, which the
	// compiler and validator require.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &argValidator{schema: compiled}, nil
}

// Validate reports the first few schema violations in args as one error.
func (v *argValidator) Validate(args map[string]any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := v.schema.Validate(inst); err != nil {
		return fmt.Errorf("invalid arguments: %s", summarizeValidation(err))
	}
	return nil
}

// summarizeValidation drops the schema-location header line the library
// prints first and keeps the per-field causes.
func summarizeValidation(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	lines := strings.Split(strings.TrimSpace(ve.Error()), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	causes := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "-"))
		if l != "" {
			causes = append(causes, l)
		}
	}
	if len(causes) == 0 {
		return ve.Error()
	}
	return strings.Join(causes, "; ")
}
