package repo

import (
	"fmt"
	"strconv"
	"strings"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
)

// Op is the comparison applied by a Condition.
type Op int

const (
	// OpContains is a case-insensitive substring match.
	OpContains Op = iota
	// OpEquals is exact equality.
	OpEquals
)

// Condition restricts one column.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// CerealFilter is a conjunction of conditions. The zero value matches every row.
type CerealFilter struct {
	Conditions []Condition
}

// Where renders the filter as a WHERE clause with $n placeholders. Columns must be
// catalog attributes; anything else is rejected so no caller input reaches the SQL text.
func (f CerealFilter) Where() (string, []any, error) {
	if len(f.Conditions) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(f.Conditions))
	args := make([]any, 0, len(f.Conditions))
	for _, cond := range f.Conditions {
		if !isCerealField(cond.Column) {
			return "", nil, fmt.Errorf("filter: unknown column %q", cond.Column)
		}
		placeholder := "$" + strconv.Itoa(len(args)+1)
		switch cond.Op {
		case OpContains:
			s, ok := cond.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("filter: %s: substring match needs a string, got %T", cond.Column, cond.Value)
			}
			parts = append(parts, cond.Column+" ILIKE "+placeholder)
			args = append(args, "%"+escapeLike(s)+"%")
		case OpEquals:
			parts = append(parts, cond.Column+" = "+placeholder)
			args = append(args, cond.Value)
		default:
			return "", nil, fmt.Errorf("filter: %s: unknown op %d", cond.Column, cond.Op)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func isCerealField(name string) bool {
	for _, f := range dom.CerealFields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// escapeLike makes %, _ and the escape character itself literal in an ILIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
