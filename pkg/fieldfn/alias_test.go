package fieldfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"year(created_at)", "created_at_year"},
		{"count(comments)", "comments_count"},
		{"weekday(date_created)", "date_created_weekday"},
		{"json(data$.a.b)", "json_data_a_b"},
		{"json(data$[0].name)", "json_data_0_name"},
		{"json(data$)", "json_data"},
		{"json(data$.a.)", "json_data_a"},
		{"json(data$.a-b)", "json_data_ab"},
		{"json(data$.a b)", "json_data_ab"},
		{"json(data$.a__b)", "json_data_a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ApplyToColumnName(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnName_Legacy(t *testing.T) {
	legacy := Synthesizer{Mode: SanitizeLegacy}
	tests := []struct {
		path   string
		strict string
		legacy string
	}{
		{".a.b", "json_data_a_b", "json_data_a_b"},
		{".a-]b", "json_data_a_b", "json_data_ab"},
		{".a b", "json_data_ab", "json_data_a_b"},
		{".a-b", "json_data_ab", "json_data_a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d := Descriptor{Function: core.FuncJSON, Field: "data", JSONPath: tt.path, HasPath: true}
			assert.Equal(t, tt.strict, ColumnName(d))
			assert.Equal(t, tt.legacy, legacy.ColumnName(d))
		})
	}
}

func TestApplyToColumnName_PlainField(t *testing.T) {
	got, err := ApplyToColumnName("title")
	require.NoError(t, err)
	assert.Equal(t, "title", got)

	_, err = ApplyToColumnName("json(data)")
	assert.ErrorIs(t, err, ErrMissingJSONPath)
}

func TestParseSanitizeMode(t *testing.T) {
	m, err := ParseSanitizeMode("")
	require.NoError(t, err)
	assert.Equal(t, SanitizeStrict, m)

	m, err = ParseSanitizeMode("Legacy")
	require.NoError(t, err)
	assert.Equal(t, SanitizeLegacy, m)
	assert.Equal(t, "legacy", m.String())

	_, err = ParseSanitizeMode("loose")
	assert.Error(t, err)
}

func TestColumnName_Idempotent(t *testing.T) {
	descriptor := func(fn core.FieldFunction) (token string, d Descriptor) {
		if fn == core.FuncJSON {
			return "json(data$.items[0].tags[])", Descriptor{Function: fn, Field: "data", JSONPath: ".items[0].tags[]", HasPath: true}
		}
		return string(fn) + "(created_at)", Descriptor{Function: fn, Field: "created_at"}
	}

	for _, mode := range []SanitizeMode{SanitizeStrict, SanitizeLegacy} {
		s := Synthesizer{Mode: mode}
		for _, fn := range core.FieldFunctions {
			t.Run(mode.String()+"/"+fn.String(), func(t *testing.T) {
				token, built := descriptor(fn)
				parsed, ok, err := Parse(token)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, built, parsed)

				first := s.ColumnName(parsed)
				assert.Equal(t, first, s.ColumnName(built))
				assert.Equal(t, first, s.ColumnName(parsed))

				res, ok, err := s.Resolve(token)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, first, res.Alias)
			})
		}
	}
}
