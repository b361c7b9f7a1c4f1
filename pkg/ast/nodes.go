package ast

import (
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
)

// Root is the top collection of a query.
type Root struct {
	name     string
	children []Child
	query    core.Query
}

// NewRoot creates the root node for collection.
func NewRoot(collection string, query core.Query, children []Child) (*Root, error) {
	if collection == "" {
		return nil, invalid(KindRoot, "", "collection is required")
	}
	if err := checkSiblings(collection, children); err != nil {
		return nil, err
	}
	return &Root{name: collection, children: cloneChildren(children), query: query.Clone()}, nil
}

func (*Root) node() {}

// Kind implements Node.
func (*Root) Kind() Kind { return KindRoot }

// Name returns the collection name.
func (r *Root) Name() string { return r.name }

// Children returns a copy of the child list.
func (r *Root) Children() []Child { return cloneChildren(r.children) }

// Query returns a copy of the root query.
func (r *Root) Query() core.Query { return r.query.Clone() }

// RelationParams are the inputs of NewManyToOne and NewOneToMany.
type RelationParams struct {
	FieldKey string         // defaults to Relation.Field
	Relation *core.Relation // required
	Query    core.Query
	Children []Child
}

// relational is the shared shape of ManyToOne and OneToMany.
type relational struct {
	name       string
	fieldKey   string
	children   []Child
	query      core.Query
	relation   core.Relation
	parentKey  string
	relatedKey string
}

func newRelational(kind Kind, want core.Cardinality, p RelationParams) (relational, error) {
	if p.Relation == nil {
		return relational{}, invalid(kind, p.FieldKey, "relation is required")
	}
	rel := cloneRelation(*p.Relation)
	if rel.Cardinality != want {
		return relational{}, invalid(kind, rel.Field, "relation %s.%s is %s", rel.Collection, rel.Field, rel.Cardinality)
	}
	if rel.RelatedCollection == "" {
		return relational{}, invalid(kind, rel.Field, "relation has no related collection")
	}
	if rel.ParentKey == "" || rel.RelatedKey == "" {
		return relational{}, invalid(kind, rel.Field, "relation keys are required")
	}
	fieldKey := p.FieldKey
	if fieldKey == "" {
		fieldKey = rel.Field
	}
	if fieldKey == "" {
		return relational{}, invalid(kind, rel.RelatedCollection, "field key is required")
	}
	if err := checkSiblings(fieldKey, p.Children); err != nil {
		return relational{}, err
	}
	return relational{
		name:       rel.RelatedCollection,
		fieldKey:   fieldKey,
		children:   cloneChildren(p.Children),
		query:      p.Query.Clone(),
		relation:   rel,
		parentKey:  rel.ParentKey,
		relatedKey: rel.RelatedKey,
	}, nil
}

// Name returns the related collection.
func (r *relational) Name() string { return r.name }

// FieldKey implements Child.
func (r *relational) FieldKey() string { return r.fieldKey }

// Children returns a copy of the child list.
func (r *relational) Children() []Child { return cloneChildren(r.children) }

// Query returns a copy of the nested query.
func (r *relational) Query() core.Query { return r.query.Clone() }

// Relation returns a copy of the traversed relation.
func (r *relational) Relation() core.Relation { return cloneRelation(r.relation) }

// ParentKey is the column on the parent collection the traversal joins from.
func (r *relational) ParentKey() string { return r.parentKey }

// RelatedKey is the column on the related collection the traversal joins to.
func (r *relational) RelatedKey() string { return r.relatedKey }

// ManyToOne follows a foreign key held by the parent collection.
type ManyToOne struct {
	relational
}

// NewManyToOne creates a many-to-one node. The relation must be ManyToOne.
func NewManyToOne(p RelationParams) (*ManyToOne, error) {
	r, err := newRelational(KindManyToOne, core.ManyToOne, p)
	if err != nil {
		return nil, err
	}
	return &ManyToOne{relational: r}, nil
}

func (*ManyToOne) node()  {}
func (*ManyToOne) child() {}

// Kind implements Node.
func (*ManyToOne) Kind() Kind { return KindManyToOne }

// OneToMany follows a foreign key held by the related collection.
type OneToMany struct {
	relational
}

// NewOneToMany creates a one-to-many node. The relation must be OneToMany.
func NewOneToMany(p RelationParams) (*OneToMany, error) {
	r, err := newRelational(KindOneToMany, core.OneToMany, p)
	if err != nil {
		return nil, err
	}
	return &OneToMany{relational: r}, nil
}

func (*OneToMany) node()  {}
func (*OneToMany) child() {}

// Kind implements Node.
func (*OneToMany) Kind() Kind { return KindOneToMany }

// AnyToManyParams are the inputs of NewAnyToMany. Every map is keyed by a
// collection listed in Names.
type AnyToManyParams struct {
	FieldKey    string         // defaults to Relation.Field
	Relation    *core.Relation // required, with a discriminator
	Names       []string       // requested target collections
	Children    map[string][]Child
	Queries     map[string]core.Query
	RelatedKeys map[string]string // primary key per collection, required for each name
}

// AnyToMany follows a polymorphic key. Each row points at one of several
// collections, chosen by the relation's discriminator field.
type AnyToMany struct {
	fieldKey   string
	names      []string
	children   map[string][]Child
	queries    map[string]core.Query
	relatedKey map[string]string
	relation   core.Relation
	parentKey  string
}

// NewAnyToMany creates a polymorphic node.
func NewAnyToMany(p AnyToManyParams) (*AnyToMany, error) {
	if p.Relation == nil {
		return nil, invalid(KindAnyToMany, p.FieldKey, "relation is required")
	}
	rel := cloneRelation(*p.Relation)
	if rel.Cardinality != core.AnyToMany {
		return nil, invalid(KindAnyToMany, rel.Field, "relation %s.%s is %s", rel.Collection, rel.Field, rel.Cardinality)
	}
	if rel.Discriminator == "" {
		return nil, invalid(KindAnyToMany, rel.Field, "relation has no discriminator")
	}
	if rel.ParentKey == "" {
		return nil, invalid(KindAnyToMany, rel.Field, "relation has no parent key")
	}
	if len(p.Names) == 0 {
		return nil, invalid(KindAnyToMany, rel.Field, "at least one collection is required")
	}

	n := &AnyToMany{
		fieldKey:   p.FieldKey,
		names:      make([]string, 0, len(p.Names)),
		children:   make(map[string][]Child, len(p.Names)),
		queries:    make(map[string]core.Query, len(p.Names)),
		relatedKey: make(map[string]string, len(p.Names)),
		relation:   rel,
		parentKey:  rel.ParentKey,
	}
	if n.fieldKey == "" {
		n.fieldKey = rel.Field
	}

	declared := make(map[string]struct{}, len(p.Names))
	for _, name := range p.Names {
		if _, dup := declared[name]; dup {
			return nil, invalid(KindAnyToMany, rel.Field, "collection %q listed twice", name)
		}
		if !rel.Allows(name) {
			return nil, invalid(KindAnyToMany, rel.Field, "collection %q is not allowed by the relation", name)
		}
		key, ok := p.RelatedKeys[name]
		if !ok || key == "" {
			return nil, invalid(KindAnyToMany, rel.Field, "no related key for collection %q", name)
		}
		if err := checkSiblings(n.fieldKey+":"+name, p.Children[name]); err != nil {
			return nil, err
		}
		declared[name] = struct{}{}
		n.names = append(n.names, name)
		n.relatedKey[name] = key
		n.children[name] = cloneChildren(p.Children[name])
		if q, ok := p.Queries[name]; ok {
			n.queries[name] = q.Clone()
		}
	}

	for name := range p.Children {
		if _, ok := declared[name]; !ok {
			return nil, invalid(KindAnyToMany, rel.Field, "children for undeclared collection %q", name)
		}
	}
	for name := range p.Queries {
		if _, ok := declared[name]; !ok {
			return nil, invalid(KindAnyToMany, rel.Field, "query for undeclared collection %q", name)
		}
	}
	for name := range p.RelatedKeys {
		if _, ok := declared[name]; !ok {
			return nil, invalid(KindAnyToMany, rel.Field, "related key for undeclared collection %q", name)
		}
	}
	return n, nil
}

func (*AnyToMany) node()  {}
func (*AnyToMany) child() {}

// Kind implements Node.
func (*AnyToMany) Kind() Kind { return KindAnyToMany }

// Name returns the polymorphic field.
func (a *AnyToMany) Name() string { return a.relation.Field }

// FieldKey implements Child.
func (a *AnyToMany) FieldKey() string { return a.fieldKey }

// Names returns the requested target collections in request order.
func (a *AnyToMany) Names() []string { return append([]string(nil), a.names...) }

// ChildrenFor returns the children selected for collection. ok is false for
// collections not listed in Names.
func (a *AnyToMany) ChildrenFor(collection string) (children []Child, ok bool) {
	c, ok := a.children[collection]
	if !ok {
		return nil, false
	}
	return cloneChildren(c), true
}

// QueryFor returns the nested query for collection.
func (a *AnyToMany) QueryFor(collection string) (core.Query, bool) {
	if _, ok := a.relatedKey[collection]; !ok {
		return core.Query{}, false
	}
	return a.queries[collection].Clone(), true
}

// RelatedKeyFor returns the primary key of collection.
func (a *AnyToMany) RelatedKeyFor(collection string) (string, bool) {
	k, ok := a.relatedKey[collection]
	return k, ok
}

// Relation returns a copy of the traversed relation.
func (a *AnyToMany) Relation() core.Relation { return cloneRelation(a.relation) }

// ParentKey is the field holding the polymorphic key.
func (a *AnyToMany) ParentKey() string { return a.parentKey }

// Discriminator is the field naming the target collection of each row.
func (a *AnyToMany) Discriminator() string { return a.relation.Discriminator }

// Field is a plain scalar projection.
type Field struct {
	name     string
	fieldKey string
}

// NewField creates a field node. fieldKey defaults to name.
func NewField(name, fieldKey string) (*Field, error) {
	if name == "" {
		return nil, invalid(KindField, fieldKey, "name is required")
	}
	if fieldKey == "" {
		fieldKey = name
	}
	return &Field{name: name, fieldKey: fieldKey}, nil
}

func (*Field) node()  {}
func (*Field) child() {}

// Kind implements Node.
func (*Field) Kind() Kind { return KindField }

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// FieldKey implements Child.
func (f *Field) FieldKey() string { return f.fieldKey }

// FunctionFieldParams are the inputs of NewFunctionField.
type FunctionFieldParams struct {
	Descriptor fieldfn.Descriptor
	FieldKey   string    // defaults to the canonical alias
	Type       core.Type // defaults to the function's output type
	Query      core.Query
	// RelatedCollection is the collection that owns the base field.
	RelatedCollection string
	// Temporary marks nodes selected only so a filter can reference them.
	Temporary bool
}

// FunctionField projects a function applied to a base field.
type FunctionField struct {
	fieldKey          string
	descriptor        fieldfn.Descriptor
	typ               core.Type
	query             core.Query
	relatedCollection string
	temporary         bool
}

// NewFunctionField creates a function field node from a validated descriptor.
func NewFunctionField(p FunctionFieldParams) (*FunctionField, error) {
	d := p.Descriptor
	if err := d.Validate(); err != nil {
		return nil, &ValidationError{Kind: KindFunctionField, Name: d.String(), Reason: err.Error()}
	}
	out, err := fieldfn.OutputType(d.Function)
	if err != nil {
		return nil, &ValidationError{Kind: KindFunctionField, Name: d.String(), Reason: err.Error()}
	}
	typ := p.Type
	if typ == "" {
		typ = out
	}
	if typ != out {
		return nil, invalid(KindFunctionField, d.String(), "type %s does not match %s output type %s", typ, d.Function, out)
	}
	if p.RelatedCollection == "" {
		return nil, invalid(KindFunctionField, d.String(), "related collection is required")
	}
	fieldKey := p.FieldKey
	if fieldKey == "" {
		fieldKey = fieldfn.ColumnName(d)
	}
	return &FunctionField{
		fieldKey:          fieldKey,
		descriptor:        d,
		typ:               typ,
		query:             p.Query.Clone(),
		relatedCollection: p.RelatedCollection,
		temporary:         p.Temporary,
	}, nil
}

func (*FunctionField) node()  {}
func (*FunctionField) child() {}

// Kind implements Node.
func (*FunctionField) Kind() Kind { return KindFunctionField }

// Name returns the base field.
func (f *FunctionField) Name() string { return f.descriptor.Field }

// FieldKey implements Child. It is the output alias.
func (f *FunctionField) FieldKey() string { return f.fieldKey }

// Function returns the applied function.
func (f *FunctionField) Function() core.FieldFunction { return f.descriptor.Function }

// Descriptor returns the parsed function expression.
func (f *FunctionField) Descriptor() fieldfn.Descriptor { return f.descriptor }

// Type returns the output type.
func (f *FunctionField) Type() core.Type { return f.typ }

// JSONPath returns the json path; ok is false for non-json functions.
func (f *FunctionField) JSONPath() (path string, ok bool) {
	return f.descriptor.JSONPath, f.descriptor.HasPath
}

// Query returns a copy of the query of the collection the field belongs to.
func (f *FunctionField) Query() core.Query { return f.query.Clone() }

// RelatedCollection returns the collection that owns the base field.
func (f *FunctionField) RelatedCollection() string { return f.relatedCollection }

// Temporary reports whether the node exists only for filtering and must be
// left out of the response.
func (f *FunctionField) Temporary() bool { return f.temporary }
