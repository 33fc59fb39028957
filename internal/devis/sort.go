package devis

import (
	"sort"
	"time"
)

// SortRecentFirst orders devis for display: createdAt descending when both
// records carry it, else updatedAt descending when both carry it, else titre
// ascending. Records with mixed field availability fall through the tiers,
// so a final tiebreak on id keeps the order total and deterministic.
func SortRecentFirst(list []Unified) {
	sort.SliceStable(list, func(i, j int) bool { return lessRecent(list[i], list[j]) })
}

func lessRecent(a, b Unified) bool {
	if a.CreatedAt != "" && b.CreatedAt != "" {
		if c := compareDates(a.CreatedAt, b.CreatedAt); c != 0 {
			return c > 0 // plus récent d'abord
		}
	} else if a.UpdatedAt != "" && b.UpdatedAt != "" {
		if c := compareDates(a.UpdatedAt, b.UpdatedAt); c != 0 {
			return c > 0
		}
	} else if a.Titre != b.Titre {
		return a.Titre < b.Titre
	}
	return a.ID < b.ID
}

// compareDates compares two ISO-8601 strings chronologically, falling back
// to lexicographic comparison when either does not parse.
func compareDates(a, b string) int {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA == nil && errB == nil {
		switch {
		case ta.After(tb):
			return 1
		case ta.Before(tb):
			return -1
		default:
			return 0
		}
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
