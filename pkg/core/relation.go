package core

// Cardinality describes the direction and multiplicity of a relational traversal.
type Cardinality int

const (
	// ManyToOne follows a foreign key stored on the current collection.
	ManyToOne Cardinality = iota + 1
	// OneToMany follows a foreign key stored on the related collection.
	OneToMany
	// AnyToMany follows a polymorphic key whose target collection is chosen
	// per row by a discriminator field.
	AnyToMany
)

// String returns the short name of the cardinality.
func (c Cardinality) String() string {
	switch c {
	case ManyToOne:
		return "m2o"
	case OneToMany:
		return "o2m"
	case AnyToMany:
		return "a2o"
	default:
		return "unknown"
	}
}

// Relation is relational metadata as seen from Collection.Field.
//
// For ManyToOne, Field holds the foreign key and RelatedKey is the primary key
// of RelatedCollection. For OneToMany, Field is an alias placeholder, ParentKey
// is the primary key of Collection and RelatedKey is the foreign key column on
// RelatedCollection. For AnyToMany, AllowedCollections lists the candidate
// targets and Discriminator names the field on Collection that stores which
// one a row points at.
type Relation struct {
	Collection         string
	Field              string
	RelatedCollection  string
	ParentKey          string
	RelatedKey         string
	Cardinality        Cardinality
	AllowedCollections []string
	Discriminator      string
}

// Allows reports whether collection is a valid target of an AnyToMany relation.
func (r Relation) Allows(collection string) bool {
	for _, c := range r.AllowedCollections {
		if c == collection {
			return true
		}
	}
	return false
}
