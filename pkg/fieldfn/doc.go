// Package fieldfn resolves function expressions embedded in field selections.
//
// A field selection token is either a plain field name ("title") or a
// function call over a field ("year(created_at)", "count(comments)",
// "json(data$.a.b)"). This package provides:
//   - Parse: classify a token and extract a Descriptor
//   - ColumnName: derive the canonical output alias for a Descriptor
//   - OutputType: map a function to the semantic type of its result
//
// # Basic Usage
//
//	d, ok, err := fieldfn.Parse("json(data$.a.b)")
//	if err != nil {
//	    return err // malformed or unsupported expression
//	}
//	if ok {
//	    alias := fieldfn.ColumnName(d)      // "json_data_a_b"
//	    typ, _ := fieldfn.OutputType(d.Function) // core.TypeJSON
//	}
//
// All functions are pure and safe for concurrent use.
package fieldfn
