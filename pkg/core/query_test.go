package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFields(t *testing.T) {
	f := Filter{
		"year(created_at)": map[string]any{"_eq": 2024},
		"status":           map[string]any{"_eq": "published"},
		FilterOr: []any{
			map[string]any{"count(comments)": map[string]any{"_gt": 1}},
			Filter{"status": map[string]any{"_null": true}},
		},
		"_internal": true,
	}

	assert.Equal(t, []string{"count(comments)", "status", "year(created_at)"}, f.FilterFields())
	assert.Empty(t, Filter(nil).FilterFields())
}

func TestFilterFields_TypedGroups(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name: "filter slice",
			filter: Filter{FilterAnd: []Filter{
				{"year(created_at)": map[string]any{"_eq": 2024}},
				{FilterOr: []Filter{{"count(comments)": map[string]any{"_gt": 0}}}},
			}},
			want: []string{"year(created_at)", "count(comments)"},
		},
		{
			name: "map slice",
			filter: Filter{FilterOr: []map[string]any{
				{"month(created_at)": map[string]any{"_eq": 4}},
				{"status": map[string]any{"_eq": "draft"}},
			}},
			want: []string{"month(created_at)", "status"},
		},
		{
			name:   "unsupported group type",
			filter: Filter{FilterAnd: "year(created_at)"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.FilterFields())
		})
	}
}

func TestFilterClone_TypedGroups(t *testing.T) {
	f := Filter{FilterAnd: []Filter{{"id": map[string]any{"_eq": 1}}}}
	c := f.Clone()
	c[FilterAnd].([]Filter)[0]["id"] = nil

	assert.NotNil(t, f[FilterAnd].([]Filter)[0]["id"])
}

func TestQueryClone(t *testing.T) {
	limit := 10
	q := Query{
		Fields: []string{"id"},
		Filter: Filter{"_and": []any{map[string]any{"id": map[string]any{"_eq": 1}}}},
		Limit:  &limit,
		Alias:  map[string]string{"y": "year(created_at)"},
		Deep:   map[string]Query{"author": {Fields: []string{"name"}}},
	}

	c := q.Clone()
	c.Fields[0] = "title"
	*c.Limit = 5
	c.Alias["y"] = "month(created_at)"
	c.Deep["author"].Fields[0] = "born"
	c.Filter["_and"].([]any)[0].(map[string]any)["id"] = nil

	assert.Equal(t, "id", q.Fields[0])
	assert.Equal(t, 10, *q.Limit)
	assert.Equal(t, "year(created_at)", q.Alias["y"])
	assert.Equal(t, "name", q.Deep["author"].Fields[0])
	assert.NotNil(t, q.Filter["_and"].([]any)[0].(map[string]any)["id"])
}
