package repository

import (
	"fmt"
	"strings"

	"lead_tracker/internal/filter"
)

// leadWhere renders q as a WHERE clause. The owner predicate is always $1 and
// always first, so no condition can widen the result beyond the owner's rows.
func leadWhere(q *filter.Query) (string, []any, error) {
	var conditions []string
	args := []any{q.OwnerID}

	bind := func(kind filter.Kind, v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d%s", len(args), castFor(kind))
	}

	conditions = append(conditions, "user_id = $1")
	for _, c := range q.Conditions {
		col, err := leadColumn(c)
		if err != nil {
			return "", nil, err
		}

		switch c.Op {
		case filter.OpEquals:
			conditions = append(conditions, fmt.Sprintf("%s = %s", col, bind(c.Kind, c.Args[0])))
		case filter.OpContains:
			conditions = append(conditions, fmt.Sprintf("strpos(lower(%s), lower(%s)) > 0", col, bind(c.Kind, c.Args[0])))
		case filter.OpIn:
			conditions = append(conditions, fmt.Sprintf("%s = ANY(%s)", col, bind(c.Kind, c.Args[0])))
		case filter.OpBetween:
			lo := bind(c.Kind, c.Args[0])
			hi := bind(c.Kind, c.Args[1])
			conditions = append(conditions, fmt.Sprintf("%s >= %s AND %s <= %s", col, lo, col, hi))
		case filter.OpGt:
			conditions = append(conditions, fmt.Sprintf("%s > %s", col, bind(c.Kind, c.Args[0])))
		case filter.OpLt:
			conditions = append(conditions, fmt.Sprintf("%s < %s", col, bind(c.Kind, c.Args[0])))
		default:
			return "", nil, fmt.Errorf("unsupported operator %s on %s", c.Op, c.Field)
		}
	}

	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// leadColumn resolves a condition to a column name through the filter registry only
func leadColumn(c filter.Condition) (string, error) {
	for _, f := range filter.Fields {
		if f.Name == c.Field && f.Kind == c.Kind {
			want := 1
			switch c.Op {
			case filter.OpBetween:
				want = 2
			}
			if len(c.Args) != want {
				return "", fmt.Errorf("operator %s on %s expects %d argument(s), got %d", c.Op, c.Field, want, len(c.Args))
			}
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("field %q is not filterable", c.Field)
}

// castFor pins parameter types that Postgres would otherwise infer from the column
func castFor(kind filter.Kind) string {
	switch kind {
	case filter.KindNumeric:
		return "::double precision"
	case filter.KindTemporal:
		return "::timestamptz"
	}
	return ""
}
