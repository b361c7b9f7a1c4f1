package fieldfn

import (
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// Descriptor is the structured form of a function expression.
// HasPath is true iff Function is core.FuncJSON.
type Descriptor struct {
	Function core.FieldFunction
	Field    string
	JSONPath string // text after the first $, e.g. ".a.b"
	HasPath  bool
}

// Path returns the JSON path expression bound at extraction time ("$.a.b").
func (d Descriptor) Path() string {
	return "$" + d.JSONPath
}

// Validate checks the descriptor invariants.
func (d Descriptor) Validate() error {
	if !d.Function.IsValid() {
		return &UnsupportedFunctionError{Name: string(d.Function)}
	}
	if d.Field == "" {
		return &MalformedExpressionError{Token: d.String(), Reason: "missing field"}
	}
	if d.Function == core.FuncJSON && !d.HasPath {
		return &MissingJSONPathError{Token: d.String()}
	}
	if d.Function != core.FuncJSON && d.HasPath {
		return &MalformedExpressionError{Token: d.String(), Reason: "only json accepts a path"}
	}
	return nil
}

// String renders the descriptor back into token form.
func (d Descriptor) String() string {
	if d.HasPath {
		return string(d.Function) + "(" + d.Field + "$" + d.JSONPath + ")"
	}
	return string(d.Function) + "(" + d.Field + ")"
}

// IsFunction reports whether token looks like a function call. It does not
// validate the call; use Parse for that.
func IsFunction(token string) bool {
	return strings.Contains(token, "(") && strings.Contains(token, ")")
}

// Parse classifies a field selection token.
//
// Tokens without parentheses are plain fields: Parse returns ok == false and
// a nil error. Otherwise the token must be a single, well-formed call of a
// supported function.
func Parse(token string) (d Descriptor, ok bool, err error) {
	open := strings.IndexByte(token, '(')
	closing := strings.LastIndexByte(token, ')')
	if open < 0 && closing < 0 {
		return Descriptor{}, false, nil
	}

	switch {
	case open < 0 || closing < 0:
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "unbalanced parentheses"}
	case strings.Count(token, "(") != strings.Count(token, ")"):
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "unbalanced parentheses"}
	case closing < open:
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "closing parenthesis before opening"}
	case closing != len(token)-1:
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "unexpected text after closing parenthesis"}
	}

	name := token[:open]
	arg := token[open+1 : closing]
	if name == "" {
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "missing function name"}
	}
	if strings.ContainsAny(arg, "()") {
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "nested function calls are not supported"}
	}

	fn := core.FieldFunction(name)
	if !fn.IsValid() {
		return Descriptor{}, false, &UnsupportedFunctionError{Name: name}
	}
	if arg == "" {
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "missing field"}
	}

	if fn != core.FuncJSON {
		return Descriptor{Function: fn, Field: arg}, true, nil
	}

	field, path, found := strings.Cut(arg, "$")
	if !found {
		return Descriptor{}, false, &MissingJSONPathError{Token: token}
	}
	if field == "" {
		return Descriptor{}, false, &MalformedExpressionError{Token: token, Reason: "missing field"}
	}
	return Descriptor{Function: fn, Field: field, JSONPath: path, HasPath: true}, true, nil
}

// SplitPath splits a dotted field path on the dots that sit outside
// parentheses, so "author.json(data$.a.b)" yields ["author", "json(data$.a.b)"].
func SplitPath(path string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				parts = append(parts, path[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, path[start:])
}

// SplitHead splits a path into its first segment and the remainder.
// rest is empty when path has a single segment.
func SplitHead(path string) (head, rest string) {
	parts := SplitPath(path)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], ".")
}
