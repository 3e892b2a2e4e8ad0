package tools

// FieldKind is the JSON type of an optional vertical parameter.
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindInteger FieldKind = "integer"
	KindBoolean FieldKind = "boolean"
)

// Field describes one optional parameter of a vertical. A nil Default means
// the field is omitted from the upstream payload unless the caller sets it.
type Field struct {
	Name        string
	Kind        FieldKind
	Description string
	Default     any
	Min         int // integers only; 0 means unbounded
	Max         int
}

// Vertical is one search category and everything needed to call it:
// the upstream endpoint, its optional fields and how the response is reshaped.
type Vertical struct {
	Name        string
	Endpoint    string
	Description string
	Fields      []Field

	// ListKey is the result key republished on success and emptied on
	// failure. Empty for verticals whose body is passed through raw.
	ListKey string
	// UpstreamKey is where the provider puts that list.
	UpstreamKey string
}

// QueryField is the required search term shared by every vertical.
const QueryField = "q"

const maxResults = 100

var (
	fieldNum = Field{
		Name: "num", Kind: KindInteger, Default: 10, Min: 1, Max: maxResults,
		Description: "Number of results to return (1-100, default 10)",
	}
	fieldLocation = Field{
		Name: "location", Kind: KindString,
		Description: "Location the search originates from, e.g. \"Austin, Texas, United States\"",
	}
	fieldGL = Field{
		Name: "gl", Kind: KindString,
		Description: "Two-letter country code for result geography, e.g. \"us\"",
	}
	fieldHL = Field{
		Name: "hl", Kind: KindString,
		Description: "Interface language code, e.g. \"en\"",
	}
	fieldTBS = Field{
		Name: "tbs", Kind: KindString,
		Description: "Time filter such as qdr:h, qdr:d, qdr:w, qdr:m or qdr:y (see get_time_filters)",
	}
	fieldAutocorrect = Field{
		Name: "autocorrect", Kind: KindBoolean, Default: true,
		Description: "Let the provider correct spelling in the query (default true)",
	}
	fieldPage = Field{
		Name: "page", Kind: KindInteger, Default: 1, Min: 1, Max: maxResults,
		Description: "Result page to fetch, starting at 1 (default 1)",
	}
)

// verticals is the fixed catalog, in the order tools are published.
var verticals = []Vertical{
	{
		Name:        "search",
		Endpoint:    "search",
		Description: "Run a Google web search. Returns organic results, the knowledge graph, related questions and related searches.",
		Fields:      []Field{fieldNum, fieldLocation, fieldGL, fieldHL, fieldAutocorrect, fieldPage},
		ListKey:     "organic_results",
		UpstreamKey: "organic",
	},
	{
		Name:        "images",
		Endpoint:    "images",
		Description: "Search Google Images. Returns image results with titles, source pages and image URLs.",
		Fields:      []Field{fieldNum, fieldLocation, fieldGL, fieldHL, fieldAutocorrect},
		ListKey:     "images",
		UpstreamKey: "images",
	},
	{
		Name:        "news",
		Endpoint:    "news",
		Description: "Search Google News articles. Supports time filters through tbs.",
		Fields:      []Field{fieldNum, fieldLocation, fieldGL, fieldHL, fieldTBS, fieldAutocorrect},
		ListKey:     "news",
		UpstreamKey: "news",
	},
	{
		Name:        "places",
		Endpoint:    "places",
		Description: "Search Google Maps places: businesses, addresses, ratings and coordinates.",
		Fields:      []Field{fieldLocation, fieldGL, fieldHL},
		ListKey:     "places",
		UpstreamKey: "places",
	},
	{
		Name:        "shopping",
		Endpoint:    "shopping",
		Description: "Search Google Shopping listings with prices and sellers.",
		Fields:      []Field{fieldNum, fieldLocation, fieldGL, fieldHL, fieldTBS},
		ListKey:     "shopping",
		UpstreamKey: "shopping",
	},
	{
		Name:        "videos",
		Endpoint:    "videos",
		Description: "Search Google Videos. Returns video results with channel, duration and link.",
		Fields:      []Field{fieldNum, fieldLocation, fieldGL, fieldHL, fieldAutocorrect},
		ListKey:     "videos",
		UpstreamKey: "videos",
	},
	{
		Name:        "scholar",
		Endpoint:    "scholar",
		Description: "Search Google Scholar for academic papers and citations. Returns the provider response as-is.",
		Fields:      []Field{fieldNum, fieldHL},
	},
	{
		Name:        "patents",
		Endpoint:    "patents",
		Description: "Search Google Patents. Returns the provider response as-is.",
		Fields:      []Field{fieldNum, fieldHL},
	},
	{
		Name:        "autocomplete",
		Endpoint:    "autocomplete",
		Description: "Get Google autocomplete suggestions for a partial query. Returns the provider response as-is.",
		Fields:      []Field{fieldGL, fieldHL},
	},
	{
		Name:        "trends",
		Endpoint:    "trends",
		Description: "Look up Google Trends interest for a query. Returns the provider response as-is.",
		Fields:      []Field{fieldLocation},
	},
}

// Verticals returns a copy of the catalog table.
func Verticals() []Vertical {
	return append([]Vertical(nil), verticals...)
}

// LookupVertical finds a vertical by name.
func LookupVertical(name string) (Vertical, bool) {
	for _, v := range verticals {
		if v.Name == name {
			return v, true
		}
	}
	return Vertical{}, false
}

// Field returns the named optional field.
func (v Vertical) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns the fields that are always sent, keyed by name.
func (v Vertical) Defaults() map[string]any {
	out := make(map[string]any)
	for _, f := range v.Fields {
		if f.Default != nil {
			out[f.Name] = f.Default
		}
	}
	return out
}

// InputSchema renders the JSON Schema published for discovery and used to
// validate arguments.
func (v Vertical) InputSchema() map[string]any {
	props := map[string]any{
		QueryField: map[string]any{
			"type":        "string",
			"description": "The search query",
			"minLength":   1,
		},
	}
	for _, f := range v.Fields {
		p := map[string]any{
			"type":        string(f.Kind),
			"description": f.Description,
		}
		if f.Default != nil {
			p["default"] = f.Default
		}
		if f.Kind == KindInteger {
			if f.Min > 0 {
				p["minimum"] = f.Min
			}
			if f.Max > 0 {
				p["maximum"] = f.Max
			}
		}
		props[f.Name] = p
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []any{QueryField},
	}
}
