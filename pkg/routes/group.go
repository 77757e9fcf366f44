package routes

import "iter"

// Group is a set of routes sharing a URL prefix. Children nest below the
// parent prefix and inherit its tags when they declare none.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// All yields every route of g and its children with the full mux pattern.
// Routes are visited parents first, in declaration order. A yielded route
// without OpenAPI tags carries the tags of its nearest tagged group.
func (g Group) All() iter.Seq2[string, Route] {
	return func(yield func(string, Route) bool) {
		g.walk("", nil, yield)
	}
}

func (g Group) walk(parent string, tags []string, yield func(string, Route) bool) bool {
	prefix := parent + g.Prefix
	if len(g.Tags) > 0 {
		tags = g.Tags
	}

	for _, r := range g.Routes {
		pattern := prefix + r.Pattern
		if pattern == "" {
			pattern = "/"
		}
		if r.OpenAPI != nil && len(r.OpenAPI.Tags) == 0 {
			op := *r.OpenAPI
			op.Tags = tags
			r.OpenAPI = &op
		}
		if !yield(pattern, r) {
			return false
		}
	}

	for _, child := range g.Children {
		if !child.walk(prefix, tags, yield) {
			return false
		}
	}
	return true
}
