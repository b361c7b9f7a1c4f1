package schema

import (
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// NativeType maps a database column type to a semantic type. Sizes and
// modifiers are ignored ("varchar(255)" is a string). Unrecognized types map
// to core.TypeUnknown.
func NativeType(native string) core.Type {
	t := strings.ToLower(strings.TrimSpace(native))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimSuffix(t, " unsigned")

	switch t {
	case "json", "jsonb":
		return core.TypeJSON
	case "int", "integer", "int2", "int4", "smallint", "tinyint", "mediumint", "serial", "smallserial":
		return core.TypeInteger
	case "bigint", "int8", "bigserial", "hugeint":
		return core.TypeBigInteger
	case "decimal", "numeric", "money":
		return core.TypeDecimal
	case "real", "float", "float4", "float8", "double", "double precision":
		return core.TypeFloat
	case "bool", "boolean", "bit":
		return core.TypeBoolean
	case "date":
		return core.TypeDate
	case "datetime", "datetime2", "smalldatetime":
		return core.TypeDateTime
	case "timestamp", "timestamptz", "timestamp with time zone", "timestamp without time zone", "datetimeoffset":
		return core.TypeTimestamp
	case "time", "timetz", "time with time zone", "time without time zone":
		return core.TypeTime
	case "uuid", "uniqueidentifier":
		return core.TypeUUID
	case "text", "tinytext", "mediumtext", "longtext", "clob", "ntext":
		return core.TypeText
	case "varchar", "char", "character", "character varying", "nvarchar", "nchar", "string", "bpchar":
		return core.TypeString
	default:
		return core.TypeUnknown
	}
}

// FromColumns builds a collection from introspected columns. The first
// primary-key column becomes the collection's primary key.
func FromColumns(collection string, cols []core.Column) Collection {
	c := Collection{Name: collection, Fields: make([]Field, 0, len(cols))}
	for _, col := range cols {
		c.Fields = append(c.Fields, Field{Name: col.Name, Type: NativeType(col.Type)})
		if col.PrimaryKey && c.Primary == "" {
			c.Primary = col.Name
		}
	}
	return c
}

// Merge returns a new snapshot with introspected collections overlaid.
//
// Declared field types win, so a YAML "json" on a TEXT column survives.
// Introspection fills in undeclared fields (appended in column order),
// replaces "unknown" declarations and supplies a missing primary key.
// Collections that are not declared are added as-is.
func (s *Snapshot) Merge(introspected ...Collection) (*Snapshot, error) {
	byName := make(map[string]Collection, len(introspected))
	var extra []Collection
	for _, c := range introspected {
		if _, ok := s.collections[c.Name]; ok {
			byName[c.Name] = c
		} else {
			extra = append(extra, c)
		}
	}

	merged := make([]Collection, 0, len(s.order)+len(extra))
	for _, name := range s.order {
		declared, _ := s.Collection(name)
		if in, ok := byName[name]; ok {
			declared = overlay(declared, in)
		}
		merged = append(merged, declared)
	}
	merged = append(merged, extra...)
	return New(merged, s.relations)
}

func overlay(declared, in Collection) Collection {
	index := make(map[string]int, len(declared.Fields))
	for i, f := range declared.Fields {
		index[f.Name] = i
	}
	for _, f := range in.Fields {
		i, ok := index[f.Name]
		if !ok {
			declared.Fields = append(declared.Fields, f)
			continue
		}
		if declared.Fields[i].Type == core.TypeUnknown {
			declared.Fields[i].Type = f.Type
		}
	}
	if declared.Primary == "" {
		declared.Primary = in.Primary
	}
	return declared
}
