package tools

import "fmt"

// NewCatalog builds the full registry: one SearchTool per vertical followed
// by the static reference tools.
func NewCatalog(up Upstream) (*Registry, error) {
	reg := NewRegistry()
	for _, v := range verticals {
		t, err := NewSearchTool(v, up)
		if err != nil {
			return nil, fmt.Errorf("building catalog: %w", err)
		}
		reg.Register(t)
	}
	for _, t := range referenceTools(up) {
		reg.Register(t)
	}
	return reg, nil
}
