package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	adktool "google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/soochol/searchgate/internal/tools"
)

// Toolset wraps every catalog tool as an ADK function tool, so an in-process
// ADK agent can call the gateway without going through HTTP.
func Toolset(reg *tools.Registry) ([]adktool.Tool, error) {
	list := reg.List()
	result := make([]adktool.Tool, 0, len(list))
	for _, t := range list {
		ft, err := NewADKTool(t)
		if err != nil {
			return nil, fmt.Errorf("adapting tool %q: %w", t.Name(), err)
		}
		result = append(result, ft)
	}
	return result, nil
}

// NewADKTool creates an ADK function tool backed by t.
func NewADKTool(t tools.Tool) (adktool.Tool, error) {
	return functiontool.New(
		functiontool.Config{
			Name:        t.Name(),
			Description: describe(t),
		},
		func(ctx adktool.Context, args map[string]any) (map[string]any, error) {
			return run(ctx, t, args), nil
		},
	)
}

// run executes t; failures stay inside the returned map so the model sees
// the error text rather than an aborted turn.
func run(ctx context.Context, t tools.Tool, args map[string]any) map[string]any {
	if args == nil {
		args = map[string]any{}
	}
	return map[string]any(t.Execute(ctx, args))
}

// describe appends a parameter summary to the description, since the ADK
// wrapper infers a generic object schema from the map argument type.
func describe(t tools.Tool) string {
	props, _ := t.InputSchema()["properties"].(map[string]any)
	if len(props) == 0 {
		return t.Description()
	}
	required := map[string]bool{}
	if req, ok := t.InputSchema()["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		prop, _ := props[name].(map[string]any)
		typ, _ := prop["type"].(string)
		switch {
		case required[name]:
			parts = append(parts, fmt.Sprintf("%s (%s, required)", name, typ))
		case prop["default"] != nil:
			parts = append(parts, fmt.Sprintf("%s (%s, default %v)", name, typ, prop["default"]))
		default:
			parts = append(parts, fmt.Sprintf("%s (%s)", name, typ))
		}
	}
	return t.Description() + " Parameters: " + strings.Join(parts, ", ") + "."
}
