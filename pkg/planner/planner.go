// Package planner builds the query tree for one request: it resolves field
// tokens against the schema, expands wildcards, applies aliases and deep
// queries and turns function tokens into function-field nodes.
//
// # Basic Usage
//
//	p := planner.New(snapshot, planner.WithLogger(logger))
//	root, err := p.Build("articles", core.Query{
//	    Fields: []string{"title", "year(created_at)", "author.name"},
//	})
//
// A Planner is read-only after New and safe for concurrent use.
package planner

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/fieldfn"
	"github.com/leapstack-labs/fieldql/pkg/schema"
)

// Event describes one function-field resolution.
type Event struct {
	Collection string
	Path       string // dotted path of field keys from the root, e.g. "author.born_year"
	Resolution fieldfn.Resolution
	FieldKey   string
	Temporary  bool
}

// Observer is called synchronously for every function field the planner
// resolves. It must not block.
type Observer func(Event)

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger. nil discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver registers a function-field observer.
func WithObserver(o Observer) Option {
	return func(p *Planner) {
		p.observer = o
	}
}

// WithSynthesizer selects how canonical aliases are derived.
func WithSynthesizer(s fieldfn.Synthesizer) Option {
	return func(p *Planner) {
		p.synth = s
	}
}

// WithMaxDepth limits relation nesting. 0 means unlimited.
func WithMaxDepth(n int) Option {
	return func(p *Planner) {
		p.maxDepth = n
	}
}

// Planner builds query trees.
type Planner struct {
	schema   schema.Lookup
	logger   *slog.Logger
	observer Observer
	synth    fieldfn.Synthesizer
	maxDepth int
}

// New creates a Planner over lookup.
func New(lookup schema.Lookup, opts ...Option) *Planner {
	p := &Planner{
		schema: lookup,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build resolves q against collection and returns the query tree.
// Nothing is exposed until the whole tree is built.
func (p *Planner) Build(collection string, q core.Query) (*ast.Root, error) {
	if len(p.schema.Fields(collection)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}

	children, err := p.level(collection, q, "", 0)
	if err != nil {
		return nil, err
	}
	root, err := ast.NewRoot(collection, q, children)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("built query tree",
		slog.String("collection", collection),
		slog.Int("children", len(children)))
	return root, nil
}

func (p *Planner) notify(e Event) {
	if p.observer != nil {
		p.observer(e)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
