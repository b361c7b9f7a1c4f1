package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

func TestDecodeQuery(t *testing.T) {
	q, err := DecodeQuery(map[string]any{
		"fields": "id, title,year(created_at)",
		"limit":  "10",
		"sort":   []any{"-created_at"},
		"filter": map[string]any{"status": map[string]any{"_eq": "draft"}},
		"alias":  map[string]any{"headline": "title"},
		"deep": map[string]any{
			"comments": map[string]any{
				"_limit":  3,
				"_fields": []any{"body"},
				"_filter": map[string]any{"body": map[string]any{"_null": false}},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "year(created_at)"}, q.Fields)
	require.NotNil(t, q.Limit)
	assert.Equal(t, 10, *q.Limit)
	assert.Equal(t, []string{"-created_at"}, q.Sort)
	assert.Equal(t, core.Filter{"status": map[string]any{"_eq": "draft"}}, q.Filter)
	assert.Equal(t, map[string]string{"headline": "title"}, q.Alias)

	deep, ok := q.Deep["comments"]
	require.True(t, ok)
	require.NotNil(t, deep.Limit)
	assert.Equal(t, 3, *deep.Limit)
	assert.Equal(t, []string{"body"}, deep.Fields)
	assert.Contains(t, deep.Filter, "body")
}

func TestDecodeQuery_Empty(t *testing.T) {
	q, err := DecodeQuery(nil)
	require.NoError(t, err)
	assert.Empty(t, q.Fields)
	assert.Nil(t, q.Limit)
}

func TestDecodeQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"unknown key", map[string]any{"colour": "red"}},
		{"bad limit", map[string]any{"limit": "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuery(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}
