// Package ast defines the query tree built for one API request: the root
// collection, nested relational traversals and the fields projected at
// each level.
//
// Nodes are created only through the New* constructors, which validate
// them, and expose their data through accessors that return copies. A tree
// is therefore immutable once built and safe to share across goroutines.
package ast

import "github.com/leapstack-labs/fieldql/pkg/core"

// Kind tags a node variant.
type Kind int

const (
	KindRoot Kind = iota + 1
	KindManyToOne
	KindOneToMany
	KindAnyToMany
	KindField
	KindFunctionField
)

// String returns the short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindManyToOne:
		return "m2o"
	case KindOneToMany:
		return "o2m"
	case KindAnyToMany:
		return "a2o"
	case KindField:
		return "field"
	case KindFunctionField:
		return "functionField"
	default:
		return "unknown"
	}
}

// Node is the base interface for all query tree nodes.
type Node interface {
	Kind() Kind
	// Name is the collection (Root, ManyToOne, OneToMany), the polymorphic
	// field (AnyToMany) or the base field (Field, FunctionField).
	Name() string
	node() // Marker method, the set of variants is closed
}

// Child is a node that appears under a parent.
type Child interface {
	Node
	// FieldKey is the key the node is exposed under in the response. It is
	// unique among siblings.
	FieldKey() string
	child()
}

// Parent is a node with a single ordered list of children.
type Parent interface {
	Node
	Children() []Child
	Query() core.Query
}

// Relational is a child node that traverses a relation.
type Relational interface {
	Child
	Relation() core.Relation
	ParentKey() string
}

var (
	_ Parent     = (*Root)(nil)
	_ Parent     = (*ManyToOne)(nil)
	_ Parent     = (*OneToMany)(nil)
	_ Relational = (*ManyToOne)(nil)
	_ Relational = (*OneToMany)(nil)
	_ Relational = (*AnyToMany)(nil)
	_ Child      = (*Field)(nil)
	_ Child      = (*FunctionField)(nil)
)

func cloneChildren(c []Child) []Child {
	if c == nil {
		return nil
	}
	return append([]Child(nil), c...)
}

func cloneRelation(r core.Relation) core.Relation {
	r.AllowedCollections = append([]string(nil), r.AllowedCollections...)
	return r
}
