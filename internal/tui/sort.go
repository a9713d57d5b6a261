package tui

import (
	"sort"
	"strings"
)

// SortState is a view's local field+direction pair.
type SortState struct {
	Field     string
	Ascending bool
}

// Toggle flips direction on a repeated field and resets to ascending when
// the field changes.
func (s *SortState) Toggle(field string) {
	if s.Field == field {
		s.Ascending = !s.Ascending
		return
	}
	s.Field = field
	s.Ascending = true
}

// Compare orders two cell values: strings ordinally, numbers by value.
// Mixed or unsupported types compare as equal so the sort stays a stable
// no-op for them.
func Compare(a, b any) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
		return 0
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// SortBy stable-sorts items by the keyed cell value in the given direction.
func SortBy[T any](items []T, key func(T) any, ascending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		cmp := Compare(key(items[i]), key(items[j]))
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

// FilterBy keeps items whose discriminant equals value, preserving order.
// "all" (or empty) means no filter.
func FilterBy[T any](items []T, value string, key func(T) string) []T {
	if value == "" || value == "all" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) == value {
			out = append(out, it)
		}
	}
	return out
}
