package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/internal/testutil"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
)

func TestCompile_DateParts(t *testing.T) {
	c := NewCompiler(dialect.Env{Schema: testutil.BlogSchema(t)})

	tests := []struct {
		fn   core.FieldFunction
		want string
	}{
		{core.FuncYear, `CAST(strftime('%Y', "articles"."created_at") AS INTEGER)`},
		{core.FuncMonth, `CAST(strftime('%m', "articles"."created_at") AS INTEGER)`},
		{core.FuncWeek, `CAST(strftime('%W', "articles"."created_at") AS INTEGER)`},
		{core.FuncDay, `CAST(strftime('%d', "articles"."created_at") AS INTEGER)`},
		{core.FuncWeekday, `CAST(strftime('%w', "articles"."created_at") AS INTEGER)`},
		{core.FuncHour, `CAST(strftime('%H', "articles"."created_at") AS INTEGER)`},
		{core.FuncMinute, `CAST(strftime('%M', "articles"."created_at") AS INTEGER)`},
		{core.FuncSecond, `CAST(strftime('%S', "articles"."created_at") AS INTEGER)`},
	}

	for _, tt := range tests {
		t.Run(tt.fn.String(), func(t *testing.T) {
			got, err := c.Compile(dialect.Request{Table: "articles", Column: "created_at", Function: tt.fn})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.SQL)
			assert.Empty(t, got.Args)
		})
	}
}

func TestCompile_Count(t *testing.T) {
	c := NewCompiler(dialect.Env{Schema: testutil.BlogSchema(t)})

	got, err := c.Compile(dialect.Request{Table: "articles", Column: "comments", Function: core.FuncCount})
	require.NoError(t, err)
	assert.Equal(t, `(SELECT COUNT(*) FROM "comments" WHERE "comments"."article" = "articles"."id")`, got.SQL)

	got, err = c.Compile(dialect.Request{Table: "articles", Column: "tags", Function: core.FuncCount})
	require.NoError(t, err)
	assert.Equal(t, `json_array_length("articles"."tags")`, got.SQL)

	_, err = c.Compile(dialect.Request{Table: "articles", Column: "title", Function: core.FuncCount})
	assert.ErrorIs(t, err, fieldfn.ErrTypeResolution)
}

func TestCompile_JSON(t *testing.T) {
	c := NewCompiler(dialect.Env{Schema: testutil.BlogSchema(t)})

	got, err := c.Compile(dialect.Request{
		Table:    "articles",
		Column:   "data",
		Function: core.FuncJSON,
		Options:  dialect.Options{JSONPath: ".a.b", HasPath: true},
	})
	require.NoError(t, err)

	assert.Equal(t, `json_extract("articles"."data", ?)`, got.SQL)
	assert.Equal(t, []any{"$.a.b"}, got.Args)

	_, err = c.Compile(dialect.Request{Table: "articles", Column: "data", Function: core.FuncJSON})
	assert.ErrorIs(t, err, fieldfn.ErrMissingJSONPath)

	for _, column := range []string{"title", "nonexistent"} {
		_, err = c.Compile(dialect.Request{
			Table:    "articles",
			Column:   column,
			Function: core.FuncJSON,
			Options:  dialect.Options{JSONPath: ".a", HasPath: true},
		})
		assert.ErrorIs(t, err, fieldfn.ErrTypeResolution, column)
	}
}

func TestCompile_QuotesIdentifiers(t *testing.T) {
	c := NewCompiler(dialect.Env{})

	got, err := c.Compile(dialect.Request{Table: `we"ird`, Column: "d", Function: core.FuncYear})
	require.NoError(t, err)
	assert.Contains(t, got.SQL, `"we""ird"`)
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("sqlite")
	require.True(t, ok)
	assert.Same(t, SQLite, d)

	c, err := dialect.NewCompiler(SQLite.Name, dialect.Env{})
	require.NoError(t, err)
	assert.IsType(t, &Compiler{}, c)
}
