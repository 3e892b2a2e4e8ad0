package tools

import (
	"context"
	"fmt"
)

// Tool is a named, schema-described callable exposed to agent runtimes.
// Execute never returns an error: failures are reported in the Result.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Execute(ctx context.Context, args map[string]any) Result
}

// Result is a tool's JSON-shaped output. The presence of an "error" key is
// the only failure signal.
type Result map[string]any

// ErrorResult builds the uniform failure shape.
func ErrorResult(msg string) Result {
	return Result{"error": msg}
}

// ErrorMessage returns the failure message and whether the result failed.
func (r Result) ErrorMessage() (string, bool) {
	v, ok := r["error"]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Failed reports whether the result carries an "error" key.
func (r Result) Failed() bool {
	_, failed := r.ErrorMessage()
	return failed
}
