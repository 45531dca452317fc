package store

import (
	"strconv"
	"strings"
)

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
// SQLite queries pass through unchanged.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// emptyBlob returns the empty-sequence sentinel for unset blob columns.
func emptyBlob(s string) string {
	if s == "" {
		return "[]"
	}
	return s
}
