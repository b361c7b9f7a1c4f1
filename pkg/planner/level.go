package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
)

type entryKind int

const (
	entryField entryKind = iota
	entryFunction
	entryRelation
)

// entry is one future child of the level being built.
type entry struct {
	kind      entryKind
	key       string
	field     string // schema field
	token     string // single-segment token, used to collapse duplicates
	res       fieldfn.Resolution
	temporary bool

	scopes []string            // a2o collection scopes in request order, "" = unscoped
	nested map[string][]string // scope -> remaining path tokens
}

// levelBuilder collects the children of one collection in the tree.
type levelBuilder struct {
	p          *Planner
	collection string
	query      core.Query
	path       string
	depth      int

	entries []*entry
	byKey   map[string]*entry
}

func (p *Planner) level(collection string, q core.Query, path string, depth int) ([]ast.Child, error) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return nil, fmt.Errorf("%w: %s", ErrMaxDepth, path)
	}

	b := &levelBuilder{
		p:          p,
		collection: collection,
		query:      q,
		path:       path,
		depth:      depth,
		byKey:      make(map[string]*entry),
	}

	tokens := q.Fields
	if len(tokens) == 0 {
		tokens = []string{"*"}
	}
	for _, token := range tokens {
		if err := b.addToken(strings.TrimSpace(token)); err != nil {
			return nil, err
		}
	}
	if err := b.addFilterFields(); err != nil {
		return nil, err
	}
	return b.build()
}

func (b *levelBuilder) addToken(token string) error {
	switch token {
	case "":
		return nil
	case "*":
		return b.addWildcard()
	}

	head, rest := fieldfn.SplitHead(token)
	key := ""
	if target, ok := b.query.Alias[head]; ok {
		if len(fieldfn.SplitPath(target)) > 1 {
			return &InvalidQueryError{Path: joinPath(b.path, head), Reason: "alias target must be a single field"}
		}
		key, head = head, target
	}

	if rest == "" {
		return b.addLeaf(key, head)
	}
	if strings.ContainsAny(head, "()") {
		return &InvalidQueryError{Path: joinPath(b.path, head), Reason: "function fields cannot be nested"}
	}
	field, scope, _ := strings.Cut(head, ":")
	return b.addNested(key, field, scope, rest)
}

func (b *levelBuilder) addWildcard() error {
	for _, f := range b.p.schema.Fields(b.collection) {
		if typ, _ := b.p.schema.FieldType(b.collection, f); typ == core.TypeAlias {
			continue
		}
		if _, exists := b.byKey[f]; exists {
			continue
		}
		b.add(&entry{kind: entryField, key: f, field: f, token: f})
	}
	return nil
}

func (b *levelBuilder) addLeaf(key, token string) error {
	res, isFn, err := b.p.synth.Resolve(token)
	if err != nil {
		return fmt.Errorf("field %q: %w", joinPath(b.path, token), err)
	}
	if isFn {
		if _, ok := b.p.schema.FieldType(b.collection, res.Descriptor.Field); !ok {
			return &FieldNotFoundError{Collection: b.collection, Field: res.Descriptor.Field}
		}
		if key == "" {
			key = res.Alias
		}
		return b.put(&entry{kind: entryFunction, key: key, field: res.Descriptor.Field, token: token, res: res})
	}

	if strings.Contains(token, ":") {
		return &InvalidQueryError{Path: joinPath(b.path, token), Reason: "collection scope requires nested fields"}
	}
	if _, ok := b.p.schema.FieldType(b.collection, token); !ok {
		return &FieldNotFoundError{Collection: b.collection, Field: token}
	}
	if key == "" {
		key = token
	}

	// A bare one-to-many field selects the related primary keys.
	if rel, ok := b.p.schema.Relation(b.collection, token); ok && rel.Cardinality == core.OneToMany {
		pk, ok := b.p.schema.PrimaryKey(rel.RelatedCollection)
		if !ok {
			return &InvalidQueryError{Path: joinPath(b.path, key), Reason: fmt.Sprintf("collection %q has no primary key", rel.RelatedCollection)}
		}
		return b.addNested(key, token, "", pk)
	}
	return b.put(&entry{kind: entryField, key: key, field: token, token: token})
}

func (b *levelBuilder) addNested(key, field, scope, rest string) error {
	if key == "" {
		key = field
	}
	e, ok := b.byKey[key]
	switch {
	case !ok:
		e = &entry{kind: entryRelation, key: key, field: field, token: field}
		b.add(e)
	case e.field != field || e.kind == entryFunction:
		return &ast.DuplicateFieldKeyError{Parent: b.collection, Key: key}
	case e.kind == entryField:
		e.kind = entryRelation
	}

	if e.nested == nil {
		e.nested = make(map[string][]string)
	}
	if _, seen := e.nested[scope]; !seen {
		e.scopes = append(e.scopes, scope)
	}
	e.nested[scope] = append(e.nested[scope], rest)
	return nil
}

// addFilterFields appends temporary function fields for function tokens the
// filter references but the selection does not.
func (b *levelBuilder) addFilterFields() error {
	for _, token := range b.query.Filter.FilterFields() {
		res, isFn, err := b.p.synth.Resolve(token)
		if err != nil {
			return fmt.Errorf("filter %q: %w", joinPath(b.path, token), err)
		}
		if !isFn {
			continue
		}
		if e, ok := b.byKey[res.Alias]; ok && e.kind == entryFunction && e.res.Descriptor == res.Descriptor {
			continue
		}
		if b.selected(res.Descriptor) {
			continue
		}
		if _, ok := b.p.schema.FieldType(b.collection, res.Descriptor.Field); !ok {
			return &FieldNotFoundError{Collection: b.collection, Field: res.Descriptor.Field}
		}
		if err := b.put(&entry{
			kind:      entryFunction,
			key:       b.freeKey(res.Alias),
			field:     res.Descriptor.Field,
			token:     token,
			res:       res,
			temporary: true,
		}); err != nil {
			return err
		}
	}
	return nil
}

// freeKey returns key, or key suffixed with "_filter" (and a counter when
// needed) if a selected field already uses it.
func (b *levelBuilder) freeKey(key string) string {
	if _, taken := b.byKey[key]; !taken {
		return key
	}
	base := key + "_filter"
	candidate := base
	for i := 2; ; i++ {
		if _, taken := b.byKey[candidate]; !taken {
			return candidate
		}
		candidate = base + "_" + strconv.Itoa(i)
	}
}

// selected reports whether d is already selected, possibly under an alias.
func (b *levelBuilder) selected(d fieldfn.Descriptor) bool {
	for _, e := range b.entries {
		if e.kind == entryFunction && e.res.Descriptor == d {
			return true
		}
	}
	return false
}

func (b *levelBuilder) put(e *entry) error {
	existing, ok := b.byKey[e.key]
	if !ok {
		b.add(e)
		return nil
	}
	switch {
	case existing.kind == e.kind && existing.token == e.token:
		return nil
	case existing.kind == entryRelation && e.kind == entryField && existing.field == e.field:
		return nil
	default:
		return &ast.DuplicateFieldKeyError{Parent: b.collection, Key: e.key}
	}
}

func (b *levelBuilder) add(e *entry) {
	b.byKey[e.key] = e
	b.entries = append(b.entries, e)
}

func (b *levelBuilder) build() ([]ast.Child, error) {
	children := make([]ast.Child, 0, len(b.entries))
	for _, e := range b.entries {
		var (
			child ast.Child
			err   error
		)
		switch e.kind {
		case entryField:
			child, err = ast.NewField(e.field, e.key)
		case entryFunction:
			child, err = b.buildFunction(e)
		case entryRelation:
			child, err = b.buildRelation(e)
		}
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (b *levelBuilder) buildFunction(e *entry) (ast.Child, error) {
	node, err := ast.NewFunctionField(ast.FunctionFieldParams{
		Descriptor:        e.res.Descriptor,
		FieldKey:          e.key,
		Type:              e.res.Type,
		Query:             b.query,
		RelatedCollection: b.collection,
		Temporary:         e.temporary,
	})
	if err != nil {
		return nil, err
	}
	b.p.notify(Event{
		Collection: b.collection,
		Path:       joinPath(b.path, e.key),
		Resolution: e.res,
		FieldKey:   e.key,
		Temporary:  e.temporary,
	})
	return node, nil
}

func (b *levelBuilder) buildRelation(e *entry) (ast.Child, error) {
	path := joinPath(b.path, e.key)
	rel, ok := b.p.schema.Relation(b.collection, e.field)
	if !ok {
		if _, exists := b.p.schema.FieldType(b.collection, e.field); exists {
			return nil, &InvalidQueryError{Path: path, Reason: fmt.Sprintf("field %q is not a relation", e.field)}
		}
		return nil, &FieldNotFoundError{Collection: b.collection, Field: e.field}
	}

	if rel.Cardinality == core.AnyToMany {
		return b.buildAnyToMany(e, rel, path)
	}
	if len(e.scopes) != 1 || e.scopes[0] != "" {
		return nil, &InvalidQueryError{Path: path, Reason: "collection scope is only valid on any-to-many relations"}
	}

	nq := b.deep(e, "")
	nq.Fields = e.nested[""]
	children, err := b.p.level(rel.RelatedCollection, nq, path, b.depth+1)
	if err != nil {
		return nil, err
	}
	params := ast.RelationParams{FieldKey: e.key, Relation: &rel, Query: nq, Children: children}
	if rel.Cardinality == core.OneToMany {
		return ast.NewOneToMany(params)
	}
	return ast.NewManyToOne(params)
}

func (b *levelBuilder) buildAnyToMany(e *entry, rel core.Relation, path string) (ast.Child, error) {
	unscoped, hasUnscoped := e.nested[""]

	var names []string
	for _, scope := range e.scopes {
		if scope == "" {
			continue
		}
		if !rel.Allows(scope) {
			return nil, &InvalidQueryError{Path: path, Reason: fmt.Sprintf("collection %q is not allowed for %q", scope, e.field)}
		}
		names = append(names, scope)
	}
	// Unscoped nested fields apply to every allowed collection.
	if hasUnscoped {
		for _, c := range rel.AllowedCollections {
			if _, scoped := e.nested[c]; !scoped {
				names = append(names, c)
			}
		}
	}

	params := ast.AnyToManyParams{
		FieldKey:    e.key,
		Relation:    &rel,
		Names:       names,
		Children:    make(map[string][]ast.Child, len(names)),
		Queries:     make(map[string]core.Query, len(names)),
		RelatedKeys: make(map[string]string, len(names)),
	}
	for _, name := range names {
		pk, ok := b.p.schema.PrimaryKey(name)
		if !ok {
			return nil, &InvalidQueryError{Path: path, Reason: fmt.Sprintf("collection %q has no primary key", name)}
		}
		nq := b.deep(e, name)
		nq.Fields = append(append([]string(nil), unscoped...), e.nested[name]...)
		children, err := b.p.level(name, nq, path+":"+name, b.depth+1)
		if err != nil {
			return nil, err
		}
		params.RelatedKeys[name] = pk
		params.Children[name] = children
		params.Queries[name] = nq
	}
	return ast.NewAnyToMany(params)
}

// deep returns the nested query for e, looked up by "key:collection", then
// key, then field.
func (b *levelBuilder) deep(e *entry, scope string) core.Query {
	if scope != "" {
		if d, ok := b.query.Deep[e.key+":"+scope]; ok {
			return d.Clone()
		}
	}
	if d, ok := b.query.Deep[e.key]; ok {
		return d.Clone()
	}
	if d, ok := b.query.Deep[e.field]; ok {
		return d.Clone()
	}
	return core.Query{}
}
