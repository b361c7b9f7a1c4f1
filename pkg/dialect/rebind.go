package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// Rebind rewrites "?" placeholders for style. Question marks inside quoted
// strings or quoted identifiers are left alone.
func Rebind(style core.PlaceholderStyle, query string) string {
	if style == core.PlaceholderQuestion || !strings.Contains(query, "?") {
		return query
	}
	out, _ := replacePlaceholders(query, func(n int) string {
		if style == core.PlaceholderAtP {
			return "@p" + strconv.Itoa(n)
		}
		return "$" + strconv.Itoa(n)
	})
	return out
}

// countPlaceholders returns the number of "?" placeholders outside quotes.
func countPlaceholders(query string) int {
	_, n := replacePlaceholders(query, func(int) string { return "?" })
	return n
}

// replacePlaceholders replaces each unquoted "?" with repl(n), n counting
// from 1, and returns the rewritten query and the placeholder count.
func replacePlaceholders(query string, repl func(n int) string) (string, int) {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case quote != 0:
			if ch == quote {
				// A doubled closing character is an escape, e.g. ]] or "".
				if i+1 < len(query) && query[i+1] == quote {
					b.WriteByte(ch)
					i++
				} else {
					quote = 0
				}
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '[':
			quote = ']'
		case ch == '?':
			n++
			b.WriteString(repl(n))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String(), n
}

// Rebind rewrites query for the dialect's placeholder style.
func (d *Dialect) Rebind(query string) string {
	return Rebind(d.Placeholder, query)
}
