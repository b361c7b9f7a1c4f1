package core

import "sort"

// Filter is a nested filter tree in the API's JSON filter syntax, e.g.
//
//	{"year(created_at)": {"_eq": 2024}, "_or": [{"status": {"_eq": "draft"}}]}
//
// Keys are field tokens or logical operators (_and, _or).
type Filter map[string]any

// Query holds the request parameters that apply to one collection in the
// query tree: the root collection or a nested relation.
type Query struct {
	Fields []string          `json:"fields,omitempty"`
	Filter Filter            `json:"filter,omitempty"`
	Sort   []string          `json:"sort,omitempty"`
	Limit  *int              `json:"limit,omitempty"`
	Offset *int              `json:"offset,omitempty"`
	Page   *int              `json:"page,omitempty"`
	Search string            `json:"search,omitempty"`
	Alias  map[string]string `json:"alias,omitempty"`
	Deep   map[string]Query  `json:"deep,omitempty"`
}

// Logical filter operators.
const (
	FilterAnd = "_and"
	FilterOr  = "_or"
)

// FilterFields returns the field tokens referenced by the top level of f,
// descending through _and/_or groups. Order follows first appearance;
// map keys at the same level are visited in sorted order so the result is
// deterministic.
func (f Filter) FilterFields() []string {
	var out []string
	seen := make(map[string]bool)
	collectFilterFields(map[string]any(f), seen, &out)
	return out
}

func collectFilterFields(m map[string]any, seen map[string]bool, out *[]string) {
	for _, key := range sortedKeys(m) {
		if key == FilterAnd || key == FilterOr {
			for _, g := range filterGroups(m[key]) {
				collectFilterFields(g, seen, out)
			}
			continue
		}
		if len(key) > 0 && key[0] == '_' {
			continue
		}
		if !seen[key] {
			seen[key] = true
			*out = append(*out, key)
		}
	}
}

// filterGroups returns the operands of an _and/_or group. Groups decoded
// from JSON are []any; groups built in Go may be []Filter or
// []map[string]any.
func filterGroups(v any) []map[string]any {
	var out []map[string]any
	switch groups := v.(type) {
	case []any:
		for _, g := range groups {
			switch sub := g.(type) {
			case map[string]any:
				out = append(out, sub)
			case Filter:
				out = append(out, sub)
			}
		}
	case []Filter:
		for _, g := range groups {
			out = append(out, g)
		}
	case []map[string]any:
		out = groups
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of q.
func (q Query) Clone() Query {
	out := q
	out.Fields = cloneStrings(q.Fields)
	out.Sort = cloneStrings(q.Sort)
	out.Filter = q.Filter.Clone()
	out.Limit = cloneInt(q.Limit)
	out.Offset = cloneInt(q.Offset)
	out.Page = cloneInt(q.Page)
	if q.Alias != nil {
		out.Alias = make(map[string]string, len(q.Alias))
		for k, v := range q.Alias {
			out.Alias[k] = v
		}
	}
	if q.Deep != nil {
		out.Deep = make(map[string]Query, len(q.Deep))
		for k, v := range q.Deep {
			out.Deep[k] = v.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of f. Nested maps and slices are copied; other
// values are shared.
func (f Filter) Clone() Filter {
	if f == nil {
		return nil
	}
	return Filter(cloneValue(map[string]any(f)).(map[string]any))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Filter:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []Filter:
		out := make([]Filter, len(t))
		for i, e := range t {
			out[i] = e.Clone()
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e).(map[string]any)
		}
		return out
	default:
		return v
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
