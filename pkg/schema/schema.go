// Package schema provides the collection metadata the planner and the
// function compilers consult: field types, relations and primary keys.
//
// Schemas are usually declared in a YAML file and optionally overlaid with
// column types introspected from a live database (see FromColumns and
// Snapshot.Merge).
package schema

import (
	"fmt"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// Lookup answers schema questions. All methods report absence with a false
// flag or an empty result rather than an error.
type Lookup interface {
	// FieldType returns the declared semantic type of collection.field.
	FieldType(collection, field string) (core.Type, bool)
	// Relation returns the relation reachable through collection.field, as
	// seen from collection.
	Relation(collection, field string) (core.Relation, bool)
	// PrimaryKey returns the primary key field of collection.
	PrimaryKey(collection string) (string, bool)
	// Fields returns the fields of collection in declaration order.
	Fields(collection string) []string
}

// Field is a declared field of a collection.
type Field struct {
	Name string
	Type core.Type
}

// Collection is a declared collection.
type Collection struct {
	Name    string
	Primary string
	Fields  []Field
}

// RelationDef declares a relation the way it is stored: from the side that
// holds the foreign key.
//
// A plain relation has RelatedCollection set; Field on Collection then points
// at RelatedCollection's primary key. OneField, when set, names the alias
// field on RelatedCollection that exposes the reverse (one-to-many) side.
//
// A polymorphic relation has OneAllowedCollections set instead of
// RelatedCollection, and OneCollectionField names the field on Collection
// that stores which collection a row points at.
type RelationDef struct {
	Collection            string   `yaml:"collection"`
	Field                 string   `yaml:"field"`
	RelatedCollection     string   `yaml:"related_collection,omitempty"`
	OneField              string   `yaml:"one_field,omitempty"`
	OneAllowedCollections []string `yaml:"one_allowed_collections,omitempty"`
	OneCollectionField    string   `yaml:"one_collection_field,omitempty"`
}

// IsPolymorphic reports whether the relation targets several collections.
func (r RelationDef) IsPolymorphic() bool {
	return len(r.OneAllowedCollections) > 0
}

type fieldKey struct {
	collection string
	field      string
}

// Snapshot is an immutable, in-memory Lookup. It is safe for concurrent use.
type Snapshot struct {
	collections map[string]Collection
	order       []string
	relations   []RelationDef

	types map[fieldKey]core.Type
	rels  map[fieldKey]core.Relation
}

var _ Lookup = (*Snapshot)(nil)

// New validates the declarations and indexes them into a Snapshot.
func New(collections []Collection, relations []RelationDef) (*Snapshot, error) {
	s := &Snapshot{
		collections: make(map[string]Collection, len(collections)),
		types:       make(map[fieldKey]core.Type),
		rels:        make(map[fieldKey]core.Relation),
	}

	for _, c := range collections {
		if c.Name == "" {
			return nil, fmt.Errorf("collection without a name")
		}
		if _, dup := s.collections[c.Name]; dup {
			return nil, fmt.Errorf("collection %q declared twice", c.Name)
		}
		c.Fields = append([]Field(nil), c.Fields...)
		for _, f := range c.Fields {
			if !f.Type.IsValid() {
				return nil, fmt.Errorf("collection %q: field %q has unknown type %q", c.Name, f.Name, f.Type)
			}
			key := fieldKey{c.Name, f.Name}
			if _, dup := s.types[key]; dup {
				return nil, fmt.Errorf("collection %q: field %q declared twice", c.Name, f.Name)
			}
			s.types[key] = f.Type
		}
		if c.Primary != "" {
			if _, ok := s.types[fieldKey{c.Name, c.Primary}]; !ok {
				return nil, fmt.Errorf("collection %q: primary key %q is not a field", c.Name, c.Primary)
			}
		}
		s.collections[c.Name] = c
		s.order = append(s.order, c.Name)
	}

	for _, r := range relations {
		if err := s.addRelation(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Snapshot) addRelation(r RelationDef) error {
	if _, ok := s.types[fieldKey{r.Collection, r.Field}]; !ok {
		return fmt.Errorf("relation %s.%s: unknown field", r.Collection, r.Field)
	}
	s.relations = append(s.relations, r)

	if r.IsPolymorphic() {
		if r.OneCollectionField == "" {
			return fmt.Errorf("relation %s.%s: one_collection_field is required", r.Collection, r.Field)
		}
		for _, c := range r.OneAllowedCollections {
			allowed, ok := s.collections[c]
			if !ok {
				return fmt.Errorf("relation %s.%s: unknown allowed collection %q", r.Collection, r.Field, c)
			}
			if allowed.Primary == "" {
				return fmt.Errorf("relation %s.%s: allowed collection %q has no primary key", r.Collection, r.Field, c)
			}
		}
		s.rels[fieldKey{r.Collection, r.Field}] = core.Relation{
			Collection:         r.Collection,
			Field:              r.Field,
			ParentKey:          r.Field,
			Cardinality:        core.AnyToMany,
			AllowedCollections: append([]string(nil), r.OneAllowedCollections...),
			Discriminator:      r.OneCollectionField,
		}
		return nil
	}

	related, ok := s.collections[r.RelatedCollection]
	if !ok {
		return fmt.Errorf("relation %s.%s: unknown related collection %q", r.Collection, r.Field, r.RelatedCollection)
	}
	if related.Primary == "" {
		return fmt.Errorf("relation %s.%s: related collection %q has no primary key", r.Collection, r.Field, related.Name)
	}
	s.rels[fieldKey{r.Collection, r.Field}] = core.Relation{
		Collection:        r.Collection,
		Field:             r.Field,
		RelatedCollection: related.Name,
		ParentKey:         r.Field,
		RelatedKey:        related.Primary,
		Cardinality:       core.ManyToOne,
	}

	if r.OneField == "" {
		return nil
	}
	if _, ok := s.types[fieldKey{related.Name, r.OneField}]; !ok {
		return fmt.Errorf("relation %s.%s: unknown one_field %s.%s", r.Collection, r.Field, related.Name, r.OneField)
	}
	s.rels[fieldKey{related.Name, r.OneField}] = core.Relation{
		Collection:        related.Name,
		Field:             r.OneField,
		RelatedCollection: r.Collection,
		ParentKey:         related.Primary,
		RelatedKey:        r.Field,
		Cardinality:       core.OneToMany,
	}
	return nil
}

// FieldType implements Lookup.
func (s *Snapshot) FieldType(collection, field string) (core.Type, bool) {
	t, ok := s.types[fieldKey{collection, field}]
	return t, ok
}

// Relation implements Lookup.
func (s *Snapshot) Relation(collection, field string) (core.Relation, bool) {
	r, ok := s.rels[fieldKey{collection, field}]
	if ok {
		r.AllowedCollections = append([]string(nil), r.AllowedCollections...)
	}
	return r, ok
}

// PrimaryKey implements Lookup.
func (s *Snapshot) PrimaryKey(collection string) (string, bool) {
	c, ok := s.collections[collection]
	if !ok || c.Primary == "" {
		return "", false
	}
	return c.Primary, true
}

// Fields implements Lookup.
func (s *Snapshot) Fields(collection string) []string {
	c, ok := s.collections[collection]
	if !ok {
		return nil
	}
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}

// Collections returns the collection names in declaration order.
func (s *Snapshot) Collections() []string {
	return append([]string(nil), s.order...)
}

// Collection returns a copy of a declared collection.
func (s *Snapshot) Collection(name string) (Collection, bool) {
	c, ok := s.collections[name]
	if !ok {
		return Collection{}, false
	}
	c.Fields = append([]Field(nil), c.Fields...)
	return c, true
}

// Relations returns the relation declarations.
func (s *Snapshot) Relations() []RelationDef {
	return append([]RelationDef(nil), s.relations...)
}
