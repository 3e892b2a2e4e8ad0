package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// unset reports whether a caller-supplied value should be treated as absent.
// Absent fields are never forwarded as null or "".
func unset(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// cleanArgs drops null and empty-string values so optional fields behave the
// same whether a caller omits them or sends them blank.
func cleanArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if unset(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// buildPayload validates args for v and returns the upstream request body:
// q, every supplied known field verbatim and every unset field's default.
func buildPayload(v Vertical, validator *argValidator, args map[string]any) (map[string]any, error) {
	args = cleanArgs(args)

	q, _ := args[QueryField].(string)
	if strings.TrimSpace(q) == "" {
		if _, present := args[QueryField]; present {
			return nil, fmt.Errorf("invalid arguments: %s must be a non-empty string", QueryField)
		}
		return nil, fmt.Errorf("missing required parameter: %s", QueryField)
	}

	if validator != nil {
		if err := validator.Validate(args); err != nil {
			return nil, err
		}
	}

	payload := map[string]any{QueryField: q}
	for _, f := range v.Fields {
		raw, ok := args[f.Name]
		if !ok {
			if f.Default != nil {
				payload[f.Name] = f.Default
			}
			continue
		}
		val, err := normalizeField(f, raw)
		if err != nil {
			return nil, err
		}
		payload[f.Name] = val
	}
	return payload, nil
}

// normalizeField converts decoded JSON values to the Go type the field
// declares. Strings and booleans pass through untouched.
func normalizeField(f Field, v any) (any, error) {
	switch f.Kind {
	case KindInteger:
		n, ok := toInt(v)
		if !ok {
			return nil, fmt.Errorf("invalid arguments: %s must be an integer", f.Name)
		}
		return n, nil
	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid arguments: %s must be a boolean", f.Name)
		}
		return b, nil
	default:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("invalid arguments: %s must be a string", f.Name)
		}
		return s, nil
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return toInt(f)
		}
	}
	return 0, false
}
