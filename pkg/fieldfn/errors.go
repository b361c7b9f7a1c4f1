package fieldfn

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// Sentinel errors for use with errors.Is.
var (
	ErrMalformedExpression = errors.New("malformed function expression")
	ErrUnsupportedFunction = errors.New("unsupported function")
	ErrMissingJSONPath     = errors.New("missing json path")
)

// MalformedExpressionError is returned when a token has unbalanced or
// otherwise unusable parentheses.
type MalformedExpressionError struct {
	Token  string
	Reason string
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed function expression %q: %s", e.Token, e.Reason)
}

// Is reports whether target is ErrMalformedExpression.
func (e *MalformedExpressionError) Is(target error) bool {
	return target == ErrMalformedExpression
}

// UnsupportedFunctionError is returned when a function name is not one of
// the supported field functions.
type UnsupportedFunctionError struct {
	Name string
}

func (e *UnsupportedFunctionError) Error() string {
	return fmt.Sprintf("unsupported function %q (supported: %v)", e.Name, core.FieldFunctions)
}

// Is reports whether target is ErrUnsupportedFunction.
func (e *UnsupportedFunctionError) Is(target error) bool {
	return target == ErrUnsupportedFunction
}

// MissingJSONPathError is returned when the json function is used without a
// $path part, either in a token or in compiler options.
type MissingJSONPathError struct {
	Token string
}

func (e *MissingJSONPathError) Error() string {
	if e.Token == "" {
		return "json function requires a path"
	}
	return fmt.Sprintf("json function %q requires a path, e.g. json(field$.path.to.value)", e.Token)
}

// Is reports whether target is ErrMissingJSONPath.
func (e *MissingJSONPathError) Is(target error) bool {
	return target == ErrMissingJSONPath
}

// Compile-time sentinels.
var (
	ErrTypeResolution               = errors.New("type resolution failed")
	ErrUnsupportedDialectCapability = errors.New("unsupported dialect capability")
)

// TypeResolutionError is returned when count() is applied to a field whose
// schema type is neither json nor a relational alias, or json() to a field
// that is not json.
type TypeResolutionError struct {
	Table    string
	Column   string
	Type     core.Type // empty when the field is unknown
	Function core.FieldFunction
}

func (e *TypeResolutionError) Error() string {
	switch {
	case e.Type == "":
		return fmt.Sprintf("couldn't extract type from %s.%s", e.Table, e.Column)
	case e.Function == core.FuncJSON:
		return fmt.Sprintf("couldn't extract json from %s.%s of type %s", e.Table, e.Column, e.Type)
	default:
		return fmt.Sprintf("couldn't count %s.%s of type %s", e.Table, e.Column, e.Type)
	}
}

// Is reports whether target is ErrTypeResolution.
func (e *TypeResolutionError) Is(target error) bool {
	return target == ErrTypeResolution
}

// UnsupportedDialectCapabilityError is returned when a dialect lacks the
// capability a function requires.
type UnsupportedDialectCapabilityError struct {
	Dialect    core.DialectKind
	Capability string
}

func (e *UnsupportedDialectCapabilityError) Error() string {
	return fmt.Sprintf("dialect %s does not support %s", e.Dialect, e.Capability)
}

// Is reports whether target is ErrUnsupportedDialectCapability.
func (e *UnsupportedDialectCapabilityError) Is(target error) bool {
	return target == ErrUnsupportedDialectCapability
}
