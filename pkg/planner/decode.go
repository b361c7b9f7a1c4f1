package planner

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// DecodeQuery converts loosely typed request parameters, as they arrive from
// a query string or a JSON body, into a core.Query. Keys may carry the
// leading underscore used by deep queries ("_filter", "_limit"), comma
// separated strings are split into lists and numeric strings are accepted
// for limit, offset and page. Unknown keys are an error.
func DecodeQuery(raw map[string]any) (core.Query, error) {
	var q core.Query
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		MatchName: func(mapKey, fieldName string) bool {
			return strings.EqualFold(strings.TrimPrefix(mapKey, "_"), fieldName)
		},
		Result: &q,
	})
	if err != nil {
		return core.Query{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return core.Query{}, &InvalidQueryError{Reason: fmt.Sprintf("decode query: %v", err)}
	}
	trimFields(&q)
	return q, nil
}

func trimFields(q *core.Query) {
	for i, f := range q.Fields {
		q.Fields[i] = strings.TrimSpace(f)
	}
	for k, d := range q.Deep {
		trimFields(&d)
		q.Deep[k] = d
	}
}
