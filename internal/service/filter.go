package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/repo"
)

// ParseFilter turns query parameters into a catalog filter. Empty and unknown parameters
// are ignored. Text attributes match by substring, numeric ones by equality; the first
// value that does not convert fails the whole filter.
func ParseFilter(q url.Values) (repo.CerealFilter, error) {
	var f repo.CerealFilter
	for _, field := range dom.CerealFields {
		raw := q.Get(field.Name)
		if raw == "" {
			continue
		}
		switch field.Kind {
		case dom.KindText:
			f.Conditions = append(f.Conditions, repo.Condition{Column: field.Name, Op: repo.OpContains, Value: raw})
		case dom.KindInt:
			// Integer columns are INTEGER in storage, so values must fit in 32 bits.
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return repo.CerealFilter{}, invalidFilterValue(field.Name)
			}
			f.Conditions = append(f.Conditions, repo.Condition{Column: field.Name, Op: repo.OpEquals, Value: int(n)})
		case dom.KindFloat:
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return repo.CerealFilter{}, invalidFilterValue(field.Name)
			}
			f.Conditions = append(f.Conditions, repo.Condition{Column: field.Name, Op: repo.OpEquals, Value: v})
		}
	}
	return f, nil
}

func invalidFilterValue(field string) error {
	return &ValidationError{Field: field, Msg: "Invalid value for " + field}
}

// filterKey identifies a filter for request coalescing.
func filterKey(f repo.CerealFilter) string {
	var b strings.Builder
	for _, c := range f.Conditions {
		b.WriteString(c.Column)
		b.WriteString(strconv.Itoa(int(c.Op)))
		b.WriteString(strconv.Quote(formatValue(c.Value)))
		b.WriteByte(';')
	}
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return ""
	}
}
