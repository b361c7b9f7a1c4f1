package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
)

var (
	authorRel = core.Relation{
		Collection: "articles", Field: "author", RelatedCollection: "authors",
		ParentKey: "author", RelatedKey: "id", Cardinality: core.ManyToOne,
	}
	commentsRel = core.Relation{
		Collection: "articles", Field: "comments", RelatedCollection: "comments",
		ParentKey: "id", RelatedKey: "article", Cardinality: core.OneToMany,
	}
	itemRel = core.Relation{
		Collection: "pages", Field: "item", ParentKey: "item", Cardinality: core.AnyToMany,
		AllowedCollections: []string{"articles", "authors"}, Discriminator: "collection",
	}
)

func mustField(t *testing.T, name, key string) *Field {
	t.Helper()
	f, err := NewField(name, key)
	require.NoError(t, err)
	return f
}

func mustFunction(t *testing.T, token, collection string) *FunctionField {
	t.Helper()
	d, ok, err := fieldfn.Parse(token)
	require.NoError(t, err)
	require.True(t, ok)
	f, err := NewFunctionField(FunctionFieldParams{Descriptor: d, RelatedCollection: collection})
	require.NoError(t, err)
	return f
}

func TestNewField(t *testing.T) {
	f := mustField(t, "title", "")
	assert.Equal(t, KindField, f.Kind())
	assert.Equal(t, "title", f.Name())
	assert.Equal(t, "title", f.FieldKey())

	f = mustField(t, "title", "headline")
	assert.Equal(t, "headline", f.FieldKey())

	_, err := NewField("", "x")
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestNewFunctionField(t *testing.T) {
	f := mustFunction(t, "json(data$.a.b)", "articles")
	assert.Equal(t, KindFunctionField, f.Kind())
	assert.Equal(t, "data", f.Name())
	assert.Equal(t, "json_data_a_b", f.FieldKey())
	assert.Equal(t, core.FuncJSON, f.Function())
	assert.Equal(t, core.TypeJSON, f.Type())
	assert.Equal(t, "articles", f.RelatedCollection())
	assert.False(t, f.Temporary())

	path, ok := f.JSONPath()
	assert.True(t, ok)
	assert.Equal(t, ".a.b", path)

	f = mustFunction(t, "year(created_at)", "articles")
	_, ok = f.JSONPath()
	assert.False(t, ok)
	assert.Equal(t, core.TypeInteger, f.Type())
}

func TestNewFunctionField_Invalid(t *testing.T) {
	year := fieldfn.Descriptor{Function: core.FuncYear, Field: "created_at"}

	tests := []struct {
		name string
		p    FunctionFieldParams
	}{
		{"json without path", FunctionFieldParams{Descriptor: fieldfn.Descriptor{Function: core.FuncJSON, Field: "d"}, RelatedCollection: "a"}},
		{"unknown function", FunctionFieldParams{Descriptor: fieldfn.Descriptor{Function: "avg", Field: "d"}, RelatedCollection: "a"}},
		{"mismatched type", FunctionFieldParams{Descriptor: year, Type: core.TypeString, RelatedCollection: "a"}},
		{"no collection", FunctionFieldParams{Descriptor: year}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFunctionField(tt.p)
			assert.ErrorIs(t, err, ErrInvalidNode)
		})
	}
}

func TestNewManyToOne(t *testing.T) {
	rel := authorRel
	n, err := NewManyToOne(RelationParams{
		Relation: &rel,
		Children: []Child{mustField(t, "name", "")},
	})
	require.NoError(t, err)

	assert.Equal(t, KindManyToOne, n.Kind())
	assert.Equal(t, "authors", n.Name())
	assert.Equal(t, "author", n.FieldKey())
	assert.Equal(t, "author", n.ParentKey())
	assert.Equal(t, "id", n.RelatedKey())
	assert.Equal(t, authorRel, n.Relation())
	assert.Len(t, n.Children(), 1)

	// mutating the input after construction does not leak in
	rel.RelatedKey = "uuid"
	assert.Equal(t, "id", n.RelatedKey())
}

func TestNewManyToOne_RequiresRelation(t *testing.T) {
	_, err := NewManyToOne(RelationParams{FieldKey: "author"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindManyToOne, verr.Kind)
	assert.Contains(t, verr.Error(), "relation is required")
}

func TestRelationalCardinalityMustMatch(t *testing.T) {
	_, err := NewManyToOne(RelationParams{Relation: &commentsRel})
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = NewOneToMany(RelationParams{Relation: &authorRel})
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = NewOneToMany(RelationParams{Relation: &itemRel})
	assert.ErrorIs(t, err, ErrInvalidNode)

	n, err := NewOneToMany(RelationParams{Relation: &commentsRel, FieldKey: "replies"})
	require.NoError(t, err)
	assert.Equal(t, KindOneToMany, n.Kind())
	assert.Equal(t, "replies", n.FieldKey())
	assert.Equal(t, "id", n.ParentKey())
	assert.Equal(t, "article", n.RelatedKey())

	broken := authorRel
	broken.RelatedKey = ""
	_, err = NewManyToOne(RelationParams{Relation: &broken})
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestDuplicateFieldKey(t *testing.T) {
	_, err := NewRoot("articles", core.Query{}, []Child{
		mustField(t, "title", ""),
		mustField(t, "headline", "title"),
	})

	var dup *DuplicateFieldKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "articles", dup.Parent)
	assert.Equal(t, "title", dup.Key)
}

func TestNilChildRejected(t *testing.T) {
	tests := []struct {
		name  string
		child Child
	}{
		{"untyped nil", nil},
		{"nil field", (*Field)(nil)},
		{"nil function field", (*FunctionField)(nil)},
		{"nil many-to-one", (*ManyToOne)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = NewRoot("articles", core.Query{}, []Child{mustField(t, "title", ""), tt.child})
			})
			assert.ErrorIs(t, err, ErrInvalidNode)
		})
	}
}

func TestRootAccessorsReturnCopies(t *testing.T) {
	limit := 5
	root, err := NewRoot("articles", core.Query{Fields: []string{"title"}, Limit: &limit}, []Child{
		mustField(t, "title", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, KindRoot, root.Kind())

	kids := root.Children()
	kids[0] = mustField(t, "other", "")
	assert.Equal(t, "title", root.Children()[0].FieldKey())

	q := root.Query()
	q.Fields[0] = "x"
	*q.Limit = 1
	assert.Equal(t, "title", root.Query().Fields[0])
	assert.Equal(t, 5, *root.Query().Limit)

	_, err = NewRoot("", core.Query{}, nil)
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestNewAnyToMany(t *testing.T) {
	n, err := NewAnyToMany(AnyToManyParams{
		Relation: &itemRel,
		Names:    []string{"authors", "articles"},
		Children: map[string][]Child{
			"articles": {mustField(t, "title", "")},
			"authors":  {mustField(t, "name", "")},
		},
		Queries:     map[string]core.Query{"articles": {Fields: []string{"title"}}},
		RelatedKeys: map[string]string{"articles": "id", "authors": "id"},
	})
	require.NoError(t, err)

	assert.Equal(t, KindAnyToMany, n.Kind())
	assert.Equal(t, "item", n.Name())
	assert.Equal(t, "item", n.FieldKey())
	assert.Equal(t, "item", n.ParentKey())
	assert.Equal(t, "collection", n.Discriminator())
	assert.Equal(t, []string{"authors", "articles"}, n.Names())

	kids, ok := n.ChildrenFor("articles")
	require.True(t, ok)
	assert.Equal(t, "title", kids[0].FieldKey())

	q, ok := n.QueryFor("articles")
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, q.Fields)

	q, ok = n.QueryFor("authors")
	require.True(t, ok)
	assert.Empty(t, q.Fields)

	key, ok := n.RelatedKeyFor("authors")
	require.True(t, ok)
	assert.Equal(t, "id", key)
}

func TestAnyToMany_UnknownCollection(t *testing.T) {
	n, err := NewAnyToMany(AnyToManyParams{
		Relation:    &itemRel,
		Names:       []string{"articles"},
		RelatedKeys: map[string]string{"articles": "id"},
	})
	require.NoError(t, err)

	kids, ok := n.ChildrenFor("videos")
	assert.False(t, ok)
	assert.Nil(t, kids)

	_, ok = n.QueryFor("videos")
	assert.False(t, ok)

	_, ok = n.RelatedKeyFor("authors")
	assert.False(t, ok)
}

func TestNewAnyToMany_Invalid(t *testing.T) {
	noDiscriminator := itemRel
	noDiscriminator.Discriminator = ""

	tests := []struct {
		name string
		p    AnyToManyParams
	}{
		{"no relation", AnyToManyParams{Names: []string{"articles"}}},
		{"wrong cardinality", AnyToManyParams{Relation: &authorRel, Names: []string{"authors"}, RelatedKeys: map[string]string{"authors": "id"}}},
		{"no discriminator", AnyToManyParams{Relation: &noDiscriminator, Names: []string{"articles"}, RelatedKeys: map[string]string{"articles": "id"}}},
		{"no names", AnyToManyParams{Relation: &itemRel}},
		{"not allowed", AnyToManyParams{Relation: &itemRel, Names: []string{"videos"}, RelatedKeys: map[string]string{"videos": "id"}}},
		{"listed twice", AnyToManyParams{Relation: &itemRel, Names: []string{"articles", "articles"}, RelatedKeys: map[string]string{"articles": "id"}}},
		{"missing related key", AnyToManyParams{Relation: &itemRel, Names: []string{"articles"}}},
		{"undeclared children", AnyToManyParams{
			Relation: &itemRel, Names: []string{"articles"},
			RelatedKeys: map[string]string{"articles": "id"},
			Children:    map[string][]Child{"authors": nil},
		}},
		{"undeclared query", AnyToManyParams{
			Relation: &itemRel, Names: []string{"articles"},
			RelatedKeys: map[string]string{"articles": "id"},
			Queries:     map[string]core.Query{"authors": {}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnyToMany(tt.p)
			assert.ErrorIs(t, err, ErrInvalidNode)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "root", KindRoot.String())
	assert.Equal(t, "a2o", KindAnyToMany.String())
	assert.Equal(t, "functionField", KindFunctionField.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
