package agents

import (
	"google.golang.org/genai"

	"github.com/soochol/searchgate/internal/tools"
)

// FunctionDeclarations converts the catalog to genai function declarations
// for runtimes that speak the Gemini tool format.
func FunctionDeclarations(reg *tools.Registry) []*genai.FunctionDeclaration {
	list := reg.List()
	decls := make([]*genai.FunctionDeclaration, 0, len(list))
	for _, t := range list {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  toGenaiSchema(t.InputSchema()),
		})
	}
	return decls
}

var genaiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// toGenaiSchema converts a tool input schema to a genai object schema.
// Unknown property types fall back to string.
func toGenaiSchema(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}
	s := &genai.Schema{Type: genai.TypeObject}
	if props, ok := schema["properties"].(map[string]any); ok && len(props) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			prop, _ := v.(map[string]any)
			s.Properties[name] = propertySchema(prop)
		}
	}
	if req, ok := schema["required"].([]any); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	return s
}

func propertySchema(prop map[string]any) *genai.Schema {
	ps := &genai.Schema{Type: genai.TypeString}
	if name, ok := prop["type"].(string); ok {
		if t, known := genaiTypes[name]; known {
			ps.Type = t
		}
	}
	ps.Description, _ = prop["description"].(string)
	ps.Default = prop["default"]
	if n, ok := number(prop["minimum"]); ok {
		ps.Minimum = &n
	}
	if n, ok := number(prop["maximum"]); ok {
		ps.Maximum = &n
	}
	return ps
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
