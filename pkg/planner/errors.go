package planner

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	ErrFieldNotFound      = errors.New("field not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrInvalidQuery       = errors.New("invalid query")
	ErrMaxDepth           = errors.New("maximum relation depth exceeded")
)

// FieldNotFoundError is returned when a token names a field the schema does
// not declare.
type FieldNotFoundError struct {
	Collection string
	Field      string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q does not exist in collection %q", e.Field, e.Collection)
}

// Is reports whether target is ErrFieldNotFound.
func (e *FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// InvalidQueryError is returned for well-formed tokens that cannot be
// applied, such as nesting into a non-relational field.
type InvalidQueryError struct {
	Path   string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	if e.Path == "" {
		return "invalid query: " + e.Reason
	}
	return fmt.Sprintf("invalid query at %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrInvalidQuery.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}
