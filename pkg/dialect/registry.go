package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// CompilerFactory creates a dialect's FunctionCompiler.
type CompilerFactory func(env Env) FunctionCompiler

type entry struct {
	dialect *Dialect
	factory CompilerFactory
}

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[core.DialectKind]entry)
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// UnknownDialectError is returned when a dialect name is not registered.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q, available: %v", e.Name, e.Available)
}

// Register registers a dialect and its compiler factory in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect, factory CompilerFactory) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[d.Name] = entry{dialect: d, factory: factory}
}

// Get returns a dialect by name. Common aliases ("postgresql", "sqlite3")
// are accepted.
func Get(name string) (*Dialect, bool) {
	kind, ok := core.ParseDialectKind(name)
	if !ok {
		return nil, false
	}
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	e, ok := dialects[kind]
	return e.dialect, ok
}

// Resolve is Get with a descriptive error.
func Resolve(name string) (*Dialect, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrDialectRequired
	}
	d, ok := Get(name)
	if !ok {
		return nil, &UnknownDialectError{Name: name, Available: List()}
	}
	return d, nil
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for kind := range dialects {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}

// NewCompiler creates the function compiler registered for kind.
func NewCompiler(kind core.DialectKind, env Env) (FunctionCompiler, error) {
	if kind == "" {
		return nil, ErrDialectRequired
	}
	dialectsMu.RLock()
	e, ok := dialects[kind]
	dialectsMu.RUnlock()
	if !ok {
		return nil, &UnknownDialectError{Name: string(kind), Available: List()}
	}
	return e.factory(env), nil
}
