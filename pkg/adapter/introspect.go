package adapter

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/fieldql/pkg/schema"
)

// Introspect reads the columns of each collection and converts them to
// schema collections, ready for schema.Snapshot.Merge.
func Introspect(ctx context.Context, a Adapter, collections ...string) ([]schema.Collection, error) {
	out := make([]schema.Collection, 0, len(collections))
	for _, name := range collections {
		cols, err := a.Columns(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("introspect %s: %w", name, err)
		}
		out = append(out, schema.FromColumns(name, cols))
	}
	return out, nil
}
