// Package listview turns a raw collection into a filtered, paginated window
// ready for rendering as a table with pager controls.
package listview

import (
	"strings"

	"golang.org/x/text/cases"
)

// Record is implemented by every entity a list page can show. Field reports
// false for names the record does not carry.
type Record interface {
	Field(name string) (string, bool)
}

// Query selects records. Term must be found in at least one of the AnyOf
// fields. Every non-empty entry of Fields must be found in its own field.
type Query struct {
	Term   string
	AnyOf  []string
	Fields map[string]string
}

// Empty reports whether the query keeps every record.
func (q Query) Empty() bool {
	if q.Term != "" {
		return false
	}
	for _, v := range q.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Filter keeps the records matching q, in their original order. A record
// lacking a field that the query needs does not match.
func Filter[T Record](records []T, q Query) []T {
	if q.Empty() {
		return records
	}

	fold := cases.Fold()
	term := fold.String(q.Term)
	fields := make(map[string]string, len(q.Fields))
	for name, v := range q.Fields {
		if v != "" {
			fields[name] = fold.String(v)
		}
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if term != "" && !matchAny(fold, r, q.AnyOf, term) {
			continue
		}
		if !matchAll(fold, r, fields) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchAny(fold cases.Caser, r Record, names []string, term string) bool {
	for _, name := range names {
		if contains(fold, r, name, term) {
			return true
		}
	}
	return false
}

func matchAll(fold cases.Caser, r Record, fields map[string]string) bool {
	for name, term := range fields {
		if !contains(fold, r, name, term) {
			return false
		}
	}
	return true
}

func contains(fold cases.Caser, r Record, name, term string) bool {
	v, ok := r.Field(name)
	if !ok {
		return false
	}
	return strings.Contains(fold.String(v), term)
}
