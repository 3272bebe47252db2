package postgres

import (
	"fmt"
	"strings"

	"conferencecentral/internal/query"
)

func sqlOp(op string) string {
	if op == "!=" {
		return "<>"
	}
	return op
}

// appendConstraints renders compiled constraints as SQL predicates, appending
// their values to args. Placeholder numbering continues from len(args).
// Equality on a repeated column means array membership.
func appendConstraints(compiled *query.Compiled, args *[]any) []string {
	clauses := make([]string, 0, len(compiled.Constraints))
	for _, c := range compiled.Constraints {
		*args = append(*args, c.Value)
		n := len(*args)
		if c.Repeated {
			switch c.Op {
			case "=":
				clauses = append(clauses, fmt.Sprintf("$%d = ANY (%s)", n, c.Column))
			case "!=":
				clauses = append(clauses, fmt.Sprintf("$%d <> ALL (%s)", n, c.Column))
			default:
				clauses = append(clauses, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS elem WHERE elem %s $%d)", c.Column, sqlOp(c.Op), n))
			}
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", c.Column, sqlOp(c.Op), n))
	}
	return clauses
}

// orderClause renders the executor's mandated ordering: the inequality column
// ascending first when present, then name.
func orderClause(compiled *query.Compiled) string {
	cols := compiled.OrderColumns()
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " ASC"
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}
