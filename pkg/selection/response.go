package selection

import (
	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/schema"
)

// FieldSchema describes one key of a response object.
type FieldSchema struct {
	Key  string    `json:"key"`
	Kind string    `json:"kind"`
	Type core.Type `json:"type,omitempty"`
	// Collection is the related collection of m2o and o2m fields.
	Collection  string                   `json:"collection,omitempty"`
	Fields      []FieldSchema            `json:"fields,omitempty"`
	Collections map[string][]FieldSchema `json:"collections,omitempty"`
}

// ResponseSchema returns the output shape of root. Function fields carry
// their output type, plain fields their schema type and relations their
// nested fields. Temporary function fields are omitted.
func ResponseSchema(root *ast.Root, lookup schema.Lookup) []FieldSchema {
	return describeLevel(root.Name(), root.Children(), lookup)
}

func describeLevel(collection string, children []ast.Child, lookup schema.Lookup) []FieldSchema {
	out := make([]FieldSchema, 0, len(children))
	for _, n := range children {
		fs := FieldSchema{Key: n.FieldKey(), Kind: n.Kind().String()}
		switch t := n.(type) {
		case *ast.Field:
			typ, ok := lookup.FieldType(collection, t.Name())
			if !ok {
				typ = core.TypeUnknown
			}
			fs.Type = typ
		case *ast.FunctionField:
			if t.Temporary() {
				continue
			}
			fs.Type = t.Type()
		case *ast.ManyToOne:
			fs.Collection = t.Name()
			fs.Fields = describeLevel(t.Name(), t.Children(), lookup)
		case *ast.OneToMany:
			fs.Collection = t.Name()
			fs.Fields = describeLevel(t.Name(), t.Children(), lookup)
		case *ast.AnyToMany:
			fs.Collections = make(map[string][]FieldSchema, len(t.Names()))
			for _, name := range t.Names() {
				nested, _ := t.ChildrenFor(name)
				fs.Collections[name] = describeLevel(name, nested, lookup)
			}
		}
		out = append(out, fs)
	}
	return out
}
