package testutil

import (
	_ "embed"
	"testing"

	"github.com/leapstack-labs/fieldql/pkg/schema"
)

//go:embed blog.yaml
var blogYAML []byte

// BlogSchema returns the shared test schema:
//
//	authors  (id, name, born, profile json, articles o2m)
//	articles (id, title, author m2o, status, data json, tags json, created_at, comments o2m)
//	comments (id, article m2o, body, created_at)
//	pages    (id, title, item a2o [articles, authors] discriminated by collection)
func BlogSchema(t testing.TB) *schema.Snapshot {
	t.Helper()
	s, err := schema.Parse(blogYAML)
	if err != nil {
		t.Fatalf("failed to parse blog schema: %v", err)
	}
	return s
}
