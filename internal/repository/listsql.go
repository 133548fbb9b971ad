package repository

import (
	"strings"

	"github.com/contactdesk/contactdesk-go/internal/query"
)

// listColumns whitelists the columns reachable through sort and filter
// parameters. Anything else is silently dropped, never interpolated.
var listColumns = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
}

// whereClause renders the filters into a parameterized WHERE fragment.
// The same fragment and args feed both the page query and the COUNT, so
// total always reflects the filters.
func whereClause(filters []query.Filter) (string, []any) {
	var conds []string
	var args []any
	for _, f := range filters {
		col, ok := listColumns[f.Field]
		if !ok {
			continue
		}
		switch f.Op {
		case query.OpEquals:
			conds = append(conds, col+" = ?")
			args = append(args, f.Value)
		case query.OpContains:
			conds = append(conds, col+" LIKE ?")
			args = append(args, "%"+escapeLike(f.Value)+"%")
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause renders the sort keys into an ORDER BY fragment,
// preserving their order for tie-breaking.
func orderClause(keys []query.SortKey) string {
	var parts []string
	for _, k := range keys {
		col, ok := listColumns[k.Field]
		if !ok {
			continue
		}
		dir := " ASC"
		if k.Descending {
			dir = " DESC"
		}
		parts = append(parts, col+dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// column pairs a column name with an optional value for SET clauses.
type column struct {
	name  string
	value *string
}

// setClause renders the defined (non-nil) columns into a parameterized
// SET fragment. Absent fields stay untouched, which is what gives
// updates their partial-patch semantics.
func setClause(cols []column) (string, []any) {
	var assignments []string
	var args []any
	for _, c := range cols {
		if c.value == nil {
			continue
		}
		assignments = append(assignments, c.name+" = ?")
		args = append(args, *c.value)
	}
	return strings.Join(assignments, ", "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(v string) string {
	return likeEscaper.Replace(v)
}
