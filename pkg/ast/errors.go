package ast

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidNode is matched by every *ValidationError.
var ErrInvalidNode = errors.New("invalid query tree node")

// ValidationError is returned when a constructor rejects its input.
type ValidationError struct {
	Kind   Kind
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid %s node: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s node %q: %s", e.Kind, e.Name, e.Reason)
}

// Is reports whether target is ErrInvalidNode.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidNode
}

// DuplicateFieldKeyError is returned when two siblings share a field key.
type DuplicateFieldKeyError struct {
	Parent string
	Key    string
}

func (e *DuplicateFieldKeyError) Error() string {
	return fmt.Sprintf("duplicate field key %q under %q", e.Key, e.Parent)
}

func invalid(kind Kind, name, format string, args ...any) error {
	return &ValidationError{Kind: kind, Name: name, Reason: fmt.Sprintf(format, args...)}
}

// isNil reports whether c is nil or a nil pointer held in the interface.
func isNil(c Child) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func checkSiblings(parent string, children []Child) error {
	seen := make(map[string]struct{}, len(children))
	for _, c := range children {
		if isNil(c) {
			return &ValidationError{Kind: KindField, Name: parent, Reason: "nil child"}
		}
		key := c.FieldKey()
		if _, dup := seen[key]; dup {
			return &DuplicateFieldKeyError{Parent: parent, Key: key}
		}
		seen[key] = struct{}{}
	}
	return nil
}
