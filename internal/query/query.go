// Package query translates list-endpoint query parameters into the
// limit/offset/order/filter structure consumed by the repositories. It
// performs no I/O.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit applies when the limit parameter is absent or unusable.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
	// DefaultSort orders listings when sort_by is not supplied.
	DefaultSort = "last_name.desc,first_name.asc"
)

// Operator is a filter comparison kind.
type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
)

// SortKey is one (field, direction) pair of an ORDER BY sequence. The
// position in the sequence determines tie-break precedence.
type SortKey struct {
	Field      string
	Descending bool
}

// Filter is a single predicate on a column.
type Filter struct {
	Field string
	Op    Operator
	Value string
}

// ListQuery is the fully parsed shape of a list request.
type ListQuery struct {
	Limit   int
	Offset  int
	OrderBy []SortKey
	Where   []Filter
}

// sortableFields are the only columns accepted in sort_by tokens.
// Unknown fields are skipped rather than interpolated into SQL.
var sortableFields = map[string]bool{
	"id":         true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
}

// filterableFields are the columns exposed through the field[operator]
// filter syntax.
var filterableFields = []string{"first_name", "last_name"}

// ParseList builds a ListQuery from raw query parameters.
//
// Non-numeric or negative limit/offset values fall back to the
// defaults; a limit above MaxLimit is clamped. A sort_by value that
// yields no usable keys falls back to DefaultSort.
func ParseList(values url.Values) ListQuery {
	q := ListQuery{Limit: DefaultLimit}

	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		q.Limit = min(n, MaxLimit)
	}
	if n, err := strconv.Atoi(values.Get("offset")); err == nil && n > 0 {
		q.Offset = n
	}

	q.OrderBy = parseSortParams(values.Get("sort_by"))
	if len(q.OrderBy) == 0 {
		q.OrderBy = parseSortParams(DefaultSort)
	}

	for _, field := range filterableFields {
		for _, op := range []Operator{OpEquals, OpContains} {
			key := field + "[" + string(op) + "]"
			if v := values.Get(key); v != "" {
				q.Where = append(q.Where, Filter{Field: field, Op: op, Value: v})
			}
		}
	}

	return q
}

// parseSortParams splits a comma-separated list of field.direction
// tokens. Blank tokens and unknown fields are skipped; any direction
// other than "desc" means ascending.
func parseSortParams(s string) []SortKey {
	var keys []SortKey
	for _, token := range strings.Split(s, ",") {
		if token == "" {
			continue
		}
		field, direction, _ := strings.Cut(token, ".")
		if !sortableFields[field] {
			continue
		}
		keys = append(keys, SortKey{Field: field, Descending: direction == "desc"})
	}
	return keys
}
