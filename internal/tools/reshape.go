package tools

// reshape republishes a successful upstream body in the vertical's result
// shape. It renames keys only; list items are passed through untouched.
func (v Vertical) reshape(query string, body map[string]any) Result {
	switch {
	case v.Name == "search":
		organic := listOf(body, "organic")
		return Result{
			"query":            query,
			"organic_results":  organic,
			"knowledge_graph":  body["knowledgeGraph"],
			"people_also_ask":  listOf(body, "peopleAlsoAsk"),
			"related_searches": listOf(body, "relatedSearches"),
			"total_results":    len(organic),
		}
	case v.ListKey != "":
		items := listOf(body, v.UpstreamKey)
		return Result{
			"query":         query,
			v.ListKey:       items,
			"total_results": len(items),
		}
	default:
		return Result(body)
	}
}

// failure builds the error shape for v, with an empty result list for
// list-shaped verticals.
func (v Vertical) failure(msg string) Result {
	r := ErrorResult(msg)
	if v.ListKey != "" {
		r[v.ListKey] = []any{}
	}
	return r
}

func listOf(body map[string]any, key string) []any {
	if items, ok := body[key].([]any); ok {
		return items
	}
	return []any{}
}
