package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// coreImports returns the import paths of every non-test file in pkg/core,
// keyed by file name.
func coreImports(t *testing.T) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	fset := token.NewFileSet()
	out := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(".", name), nil, parser.ImportsOnly)
		require.NoError(t, err, "parse %s", name)
		for _, imp := range f.Imports {
			out[name] = append(out[name], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnlyStdlib verifies the Golden Rule: pkg/core imports
// nothing but the standard library.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range coreImports(t) {
		for _, path := range imports {
			// Standard library paths have no dot in their first element.
			first, _, _ := strings.Cut(path, "/")
			if strings.Contains(first, ".") {
				t.Errorf("%s imports non-stdlib package: %s", file, path)
			}
		}
	}
}

// TestCoreDoesNotImportDrivers keeps database drivers out of the shared
// vocabulary. database/sql is allowed for core.Rows.
func TestCoreDoesNotImportDrivers(t *testing.T) {
	forbidden := []string{"database/sql/driver", "/internal/", "/pkg/"}
	for file, imports := range coreImports(t) {
		for _, path := range imports {
			for _, f := range forbidden {
				if strings.Contains(path, f) {
					t.Errorf("%s imports %s (core must stay a leaf package)", file, path)
				}
			}
		}
	}
}
