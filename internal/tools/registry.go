package tools

import (
	"context"
	"fmt"
	"sync"
)

// Registry holds the tool catalog. Tools are listed in registration order so
// discovery documents are stable across restarts.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool, replacing any earlier tool with the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Execute runs the named tool. The error is only for an unknown name; tool
// failures come back inside the Result.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (Result, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %q", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.Execute(ctx, args), nil
}

// List returns all tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// ToolInfo is the discovery view of a tool.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

func (r *Registry) AllTools() []ToolInfo {
	list := r.List()
	result := make([]ToolInfo, 0, len(list))
	for _, t := range list {
		result = append(result, ToolInfo{Name: t.Name(), Description: t.Description(), InputSchema: t.InputSchema()})
	}
	return result
}
