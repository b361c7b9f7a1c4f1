package mssql

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
		{core.FuncYear, `DATEPART(year, [articles].[created_at])`},
		{core.FuncMonth, `DATEPART(month, [articles].[created_at])`},
		{core.FuncWeek, `DATEPART(week, [articles].[created_at])`},
		{core.FuncDay, `DATEPART(day, [articles].[created_at])`},
		{core.FuncWeekday, `DATEPART(weekday, [articles].[created_at])`},
		{core.FuncHour, `DATEPART(hour, [articles].[created_at])`},
		{core.FuncMinute, `DATEPART(minute, [articles].[created_at])`},
		{core.FuncSecond, `DATEPART(second, [articles].[created_at])`},
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
	assert.Equal(t, `(SELECT COUNT(*) FROM [comments] WHERE [comments].[article] = [articles].[id])`, got.SQL)

	_, err = c.Compile(dialect.Request{Table: "articles", Column: "tags", Function: core.FuncCount})
	var capErr *fieldfn.UnsupportedDialectCapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, core.DialectMSSQL, capErr.Dialect)
	assert.Equal(t, string(dialect.CapJSONCount), capErr.Capability)

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

	assert.Equal(t, `COALESCE(JSON_QUERY([articles].[data], ?), JSON_VALUE([articles].[data], ?))`, got.SQL)
	assert.Equal(t, []any{"$.a.b", "$.a.b"}, got.Args)

	assert.Equal(t,
		`COALESCE(JSON_QUERY([articles].[data], @p1), JSON_VALUE([articles].[data], @p2))`,
		MSSQL.Rebind(got.SQL))

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

	got, err := c.Compile(dialect.Request{Table: `we]ird`, Column: "d", Function: core.FuncYear})
	require.NoError(t, err)
	assert.Contains(t, got.SQL, `[we]]ird]`)
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("mssql")
	require.True(t, ok)
	assert.Same(t, MSSQL, d)

	c, err := dialect.NewCompiler(MSSQL.Name, dialect.Env{})
	require.NoError(t, err)
	assert.IsType(t, &Compiler{}, c)
}
