// Package core defines the shared language of the fieldql system.
//
// This package contains:
//   - Field functions and semantic field types (FieldFunction, Type)
//   - Relational metadata (Relation, Cardinality)
//   - The per-collection request shape (Query, Filter)
//   - Dialect and adapter configuration (DialectConfig, AdapterConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
