package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

func TestNativeType(t *testing.T) {
	tests := []struct {
		native string
		want   core.Type
	}{
		{"JSONB", core.TypeJSON},
		{"json", core.TypeJSON},
		{"INTEGER", core.TypeInteger},
		{"int(11) unsigned", core.TypeInteger},
		{"BIGINT", core.TypeBigInteger},
		{"numeric(10,2)", core.TypeDecimal},
		{"double precision", core.TypeFloat},
		{"boolean", core.TypeBoolean},
		{"DATE", core.TypeDate},
		{"datetime2", core.TypeDateTime},
		{"timestamp with time zone", core.TypeTimestamp},
		{"TIME", core.TypeTime},
		{"uuid", core.TypeUUID},
		{"TEXT", core.TypeText},
		{"varchar(255)", core.TypeString},
		{"character varying", core.TypeString},
		{"geometry", core.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, NativeType(tt.native))
		})
	}
}

func TestFromColumns(t *testing.T) {
	c := FromColumns("events", []core.Column{
		{Name: "id", Type: "INTEGER", PrimaryKey: true, Position: 1},
		{Name: "payload", Type: "TEXT", Position: 2},
		{Name: "at", Type: "TIMESTAMP", Position: 3},
	})

	assert.Equal(t, "events", c.Name)
	assert.Equal(t, "id", c.Primary)
	assert.Equal(t, []Field{
		{Name: "id", Type: core.TypeInteger},
		{Name: "payload", Type: core.TypeText},
		{Name: "at", Type: core.TypeTimestamp},
	}, c.Fields)
}

func TestMerge(t *testing.T) {
	declared, err := New([]Collection{{
		Name: "events",
		Fields: []Field{
			{Name: "payload", Type: core.TypeJSON},
			{Name: "source", Type: core.TypeUnknown},
		},
	}}, nil)
	require.NoError(t, err)

	merged, err := declared.Merge(
		FromColumns("events", []core.Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "payload", Type: "TEXT"},
			{Name: "source", Type: "VARCHAR"},
		}),
		FromColumns("users", []core.Column{{Name: "id", Type: "INTEGER", PrimaryKey: true}}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"payload", "source", "id"}, merged.Fields("events"))

	typ, _ := merged.FieldType("events", "payload")
	assert.Equal(t, core.TypeJSON, typ, "declared type wins")

	typ, _ = merged.FieldType("events", "source")
	assert.Equal(t, core.TypeString, typ, "unknown is replaced")

	pk, ok := merged.PrimaryKey("events")
	require.True(t, ok)
	assert.Equal(t, "id", pk)

	assert.Equal(t, []string{"events", "users"}, merged.Collections())

	// the original snapshot is untouched
	assert.Equal(t, []string{"payload", "source"}, declared.Fields("events"))
}
