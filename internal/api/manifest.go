package api

import (
	"net/http"

	"github.com/soochol/searchgate/internal/tools"
)

// PluginManifest is the discovery document served at
// /.well-known/ai-plugin.json.
type PluginManifest struct {
	SchemaVersion       string           `json:"schema_version"`
	NameForHuman        string           `json:"name_for_human"`
	NameForModel        string           `json:"name_for_model"`
	DescriptionForHuman string           `json:"description_for_human"`
	DescriptionForModel string           `json:"description_for_model"`
	Auth                ManifestAuth     `json:"auth"`
	Tools               []tools.ToolInfo `json:"tools"`
}

type ManifestAuth struct {
	Type string `json:"type"`
}

// BuildManifest renders the manifest from the registry, so the published
// schemas always match what the tools validate against.
func BuildManifest(reg *tools.Registry) PluginManifest {
	return PluginManifest{
		SchemaVersion:       "v1",
		NameForHuman:        "Serperdev MCP",
		NameForModel:        "serperdev_mcp",
		DescriptionForHuman: "Google search verticals via Serper.dev.",
		DescriptionForModel: "Search the web, images, news, places, shopping, videos, scholar, patents, " +
			"autocomplete and trends via Serper.dev. Structured SERP results for AI agents. " +
			"Every result containing an \"error\" key is a failed call.",
		Auth:  ManifestAuth{Type: "none"},
		Tools: reg.AllTools(),
	}
}

func (s *Server) pluginManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BuildManifest(s.toolReg))
}
