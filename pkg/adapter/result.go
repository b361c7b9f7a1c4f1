package adapter

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// Result is a fully read query result.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Collect reads and closes rows. Byte slices are returned as strings.
func Collect(rows *core.Rows) (*Result, error) {
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return res, nil
}

// Drop removes the named columns, e.g. temporary filter fields.
func (r *Result) Drop(keys ...string) {
	keep := make([]int, 0, len(r.Columns))
	for i, c := range r.Columns {
		if !slices.Contains(keys, c) {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(r.Columns) {
		return
	}

	cols := make([]string, len(keep))
	for j, i := range keep {
		cols[j] = r.Columns[i]
	}
	for n, row := range r.Rows {
		out := make([]any, len(keep))
		for j, i := range keep {
			out[j] = row[i]
		}
		r.Rows[n] = out
	}
	r.Columns = cols
}

// Maps returns each row keyed by column name.
func (r *Result) Maps() []map[string]any {
	out := make([]map[string]any, len(r.Rows))
	for n, row := range r.Rows {
		m := make(map[string]any, len(r.Columns))
		for i, c := range r.Columns {
			m[c] = row[i]
		}
		out[n] = m
	}
	return out
}
