package tools

import "context"

// ReferenceTool returns static data for agent self-discovery. It never
// calls the provider.
type ReferenceTool struct {
	name        string
	description string
	build       func() Result
}

func (r *ReferenceTool) Name() string        { return r.name }
func (r *ReferenceTool) Description() string { return r.description }

func (r *ReferenceTool) InputSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (r *ReferenceTool) Execute(ctx context.Context, args map[string]any) Result {
	return r.build()
}

type codeName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var countries = []codeName{
	{"us", "United States"}, {"gb", "United Kingdom"}, {"ca", "Canada"},
	{"au", "Australia"}, {"nz", "New Zealand"}, {"ie", "Ireland"},
	{"in", "India"}, {"sg", "Singapore"}, {"za", "South Africa"},
	{"de", "Germany"}, {"fr", "France"}, {"es", "Spain"},
	{"it", "Italy"}, {"nl", "Netherlands"}, {"se", "Sweden"},
	{"no", "Norway"}, {"dk", "Denmark"}, {"pl", "Poland"},
	{"br", "Brazil"}, {"mx", "Mexico"}, {"ar", "Argentina"},
	{"jp", "Japan"}, {"kr", "South Korea"}, {"tw", "Taiwan"},
	{"id", "Indonesia"}, {"ph", "Philippines"}, {"tr", "Turkey"},
	{"ae", "United Arab Emirates"},
}

var languages = []codeName{
	{"en", "English"}, {"es", "Spanish"}, {"fr", "French"},
	{"de", "German"}, {"it", "Italian"}, {"pt", "Portuguese"},
	{"nl", "Dutch"}, {"sv", "Swedish"}, {"no", "Norwegian"},
	{"da", "Danish"}, {"fi", "Finnish"}, {"pl", "Polish"},
	{"ru", "Russian"}, {"tr", "Turkish"}, {"ar", "Arabic"},
	{"he", "Hebrew"}, {"hi", "Hindi"}, {"ja", "Japanese"},
	{"ko", "Korean"}, {"zh-cn", "Chinese (Simplified)"}, {"zh-tw", "Chinese (Traditional)"},
	{"id", "Indonesian"}, {"vi", "Vietnamese"}, {"th", "Thai"},
}

var locationExamples = []string{
	"New York, New York, United States",
	"San Francisco, California, United States",
	"London, England, United Kingdom",
	"Toronto, Ontario, Canada",
	"Berlin, Germany",
	"Paris, Ile-de-France, France",
	"Sydney, New South Wales, Australia",
	"Tokyo, Japan",
}

var timeFilters = []map[string]string{
	{"value": "qdr:h", "description": "Past hour"},
	{"value": "qdr:d", "description": "Past 24 hours"},
	{"value": "qdr:w", "description": "Past week"},
	{"value": "qdr:m", "description": "Past month"},
	{"value": "qdr:y", "description": "Past year"},
}

func referenceTools(up Upstream) []Tool {
	return []Tool{
		&ReferenceTool{
			name:        "get_supported_locations",
			description: "List country codes accepted by gl and example location strings.",
			build: func() Result {
				return Result{
					"countries":         countries,
					"location_examples": locationExamples,
					"notes":             "Use gl for the result country and location for a city-level origin. Both are optional.",
				}
			},
		},
		&ReferenceTool{
			name:        "get_supported_languages",
			description: "List language codes accepted by hl.",
			build: func() Result {
				return Result{"languages": languages}
			},
		},
		&ReferenceTool{
			name:        "get_time_filters",
			description: "List tbs time filter values and the tools that accept them.",
			build: func() Result {
				return Result{
					"time_filters": timeFilters,
					"applies_to":   verticalsWithField("tbs"),
				}
			},
		},
		&ReferenceTool{
			name:        "get_api_info",
			description: "Describe the upstream search provider, the available tools and whether a credential is configured.",
			build: func() Result {
				names := make([]string, 0, len(verticals))
				for _, v := range verticals {
					names = append(names, v.Name)
				}
				return Result{
					"provider":              "Serper.dev",
					"base_url":              up.BaseURL(),
					"timeout_seconds":       int(up.Timeout().Seconds()),
					"credential_configured": up.Configured(),
					"max_results":           maxResults,
					"search_tools":          names,
				}
			},
		},
		&ReferenceTool{
			name:        "get_search_info",
			description: "Describe every search tool: endpoint, parameters with defaults and result key.",
			build: func() Result {
				return Result{"verticals": searchInfo()}
			},
		},
	}
}

func verticalsWithField(name string) []string {
	var out []string
	for _, v := range verticals {
		if _, ok := v.Field(name); ok {
			out = append(out, v.Name)
		}
	}
	return out
}

func searchInfo() []map[string]any {
	out := make([]map[string]any, 0, len(verticals))
	for _, v := range verticals {
		params := make([]map[string]any, 0, len(v.Fields))
		for _, f := range v.Fields {
			p := map[string]any{
				"name":        f.Name,
				"type":        string(f.Kind),
				"description": f.Description,
			}
			if f.Default != nil {
				p["default"] = f.Default
			}
			params = append(params, p)
		}
		var resultKey any
		if v.ListKey != "" {
			resultKey = v.ListKey
		}
		out = append(out, map[string]any{
			"name":        v.Name,
			"endpoint":    "/" + v.Endpoint,
			"description": v.Description,
			"required":    []string{QueryField},
			"optional":    params,
			"result_key":  resultKey,
		})
	}
	return out
}
