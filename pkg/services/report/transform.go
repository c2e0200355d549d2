package report

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

// SortRows orders rows by the sortBy key without mutating the input.
// The sort is stable; rows missing the key (or carrying nil) always
// sort last regardless of direction. Strings compare with locale-aware
// ordering, numbers numerically; any other type pair keeps its original
// relative order.
func SortRows(rows []domain.Row, sortBy string, direction domain.SortDirection) []domain.Row {
	sorted := make([]domain.Row, len(rows))
	copy(sorted, rows)

	collator := collate.New(language.English)
	desc := direction == domain.SortDesc

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i][sortBy], sorted[j][sortBy]

		if a == nil && b == nil {
			return false
		}
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}

		if as, ok := a.(string); ok {
			if bs, ok := b.(string); ok {
				cmp := collator.CompareString(as, bs)
				if desc {
					return cmp > 0
				}
				return cmp < 0
			}
		}

		if af, ok := numericValue(a); ok {
			if bf, ok := numericValue(b); ok {
				if desc {
					return af > bf
				}
				return af < bf
			}
		}

		return false
	})

	return sorted
}

// SelectColumns projects each row onto the named keys, silently
// omitting keys absent from a row. An empty column list returns the
// rows unchanged.
func SelectColumns(rows []domain.Row, columns []string) []domain.Row {
	if len(columns) == 0 {
		return rows
	}
	projected := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		selected := domain.Row{}
		for _, col := range columns {
			if v, ok := row[col]; ok {
				selected[col] = v
			}
		}
		projected = append(projected, selected)
	}
	return projected
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
