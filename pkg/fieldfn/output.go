package fieldfn

import "github.com/leapstack-labs/fieldql/pkg/core"

// outputTypes must list every core.FieldFunction.
var outputTypes = map[core.FieldFunction]core.Type{
	core.FuncYear:    core.TypeInteger,
	core.FuncMonth:   core.TypeInteger,
	core.FuncWeek:    core.TypeInteger,
	core.FuncDay:     core.TypeInteger,
	core.FuncWeekday: core.TypeInteger,
	core.FuncHour:    core.TypeInteger,
	core.FuncMinute:  core.TypeInteger,
	core.FuncSecond:  core.TypeInteger,
	core.FuncCount:   core.TypeInteger,
	core.FuncJSON:    core.TypeJSON, // rendered as json, not string
}

// OutputType returns the semantic type of the value fn produces.
func OutputType(fn core.FieldFunction) (core.Type, error) {
	t, ok := outputTypes[fn]
	if !ok {
		return "", &UnsupportedFunctionError{Name: string(fn)}
	}
	return t, nil
}

// Resolution bundles everything derived from a function token.
type Resolution struct {
	Token      string
	Descriptor Descriptor
	Alias      string
	Type       core.Type
}

// Resolve parses token and derives its alias and output type. ok is false for
// plain fields.
func (s Synthesizer) Resolve(token string) (r Resolution, ok bool, err error) {
	d, ok, err := Parse(token)
	if err != nil || !ok {
		return Resolution{}, ok, err
	}
	typ, err := OutputType(d.Function)
	if err != nil {
		return Resolution{}, false, err
	}
	return Resolution{
		Token:      token,
		Descriptor: d,
		Alias:      s.ColumnName(d),
		Type:       typ,
	}, true, nil
}
