package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/internal/testutil"
	"github.com/leapstack-labs/fieldql/pkg/adapter"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
	duckdialect "github.com/leapstack-labs/fieldql/pkg/dialects/duckdb"
	"github.com/leapstack-labs/fieldql/pkg/planner"
	"github.com/leapstack-labs/fieldql/pkg/selection"
)

func connect(t *testing.T, path string) *Adapter {
	t.Helper()
	a := New(testutil.NewTestLogger(t))
	require.NoError(t, a.Connect(context.Background(), core.AdapterConfig{Type: "duckdb", Path: path}))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAdapter_Connect(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		a := connect(t, ":memory:")
		assert.True(t, a.IsConnected())
	})

	t.Run("file-based", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blog.duckdb")
		connect(t, path)
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}

func TestAdapter_NotConnected(t *testing.T) {
	a := New(nil)
	ctx := context.Background()

	assert.ErrorIs(t, a.Exec(ctx, "SELECT 1"), adapter.ErrNotConnected)
	_, err := a.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
	_, err = a.Columns(ctx, "articles")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestAdapter_Columns(t *testing.T) {
	a := connect(t, ":memory:")
	ctx := context.Background()
	require.NoError(t, a.Exec(ctx, `CREATE TABLE articles (id INTEGER PRIMARY KEY, title VARCHAR, created_at TIMESTAMP)`))

	cols, err := a.Columns(ctx, "articles")
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "id", cols[0].Name)
	assert.True(t, cols[0].PrimaryKey)
	assert.Equal(t, "TIMESTAMP", cols[2].Type)

	_, err = a.Columns(ctx, "missing")
	assert.ErrorIs(t, err, adapter.ErrTableNotFound)
}

func TestAdapter_ExecutesCompiledSelection(t *testing.T) {
	a := connect(t, ":memory:")
	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE articles (id INTEGER PRIMARY KEY, title VARCHAR, created_at TIMESTAMP)`,
		`CREATE TABLE comments (id INTEGER PRIMARY KEY, article INTEGER, body VARCHAR)`,
		`INSERT INTO articles VALUES (1, 'first', TIMESTAMP '2023-04-01 10:00:00'), (2, 'second', TIMESTAMP '2024-06-02 11:30:00')`,
		`INSERT INTO comments VALUES (1, 1, 'a'), (2, 1, 'b'), (3, 2, 'c')`,
	} {
		require.NoError(t, a.Exec(ctx, stmt))
	}

	lookup := testutil.BlogSchema(t)
	root, err := planner.New(lookup).Build("articles", core.Query{
		Fields: []string{"id", "year(created_at)", "count(comments)"},
	})
	require.NoError(t, err)

	stmt, err := selection.Select(root, duckdialect.NewCompiler(dialect.Env{Schema: lookup}))
	require.NoError(t, err)

	rows, err := a.Query(ctx, stmt.SQL+` ORDER BY "id"`, stmt.Args...)
	require.NoError(t, err)
	res, err := adapter.Collect(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "created_at_year", "comments_count"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.EqualValues(t, 2023, res.Rows[0][1])
	assert.EqualValues(t, 2, res.Rows[0][2])
	assert.EqualValues(t, 2024, res.Rows[1][1])
	assert.EqualValues(t, 1, res.Rows[1][2])
}
