package devis

import "strings"

// Helpers the back-office pages use on top of the unified list. They all
// operate on already-normalized records and never touch the store.

// FilterByStatus keeps devis whose displayed status matches exactly.
// An empty status returns the list unchanged.
func FilterByStatus(list []Unified, status string) []Unified {
	if status == "" {
		return list
	}
	out := make([]Unified, 0, len(list))
	for _, d := range list {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out
}

// GroupByCollection buckets devis by their source table.
func GroupByCollection(list []Unified) map[string][]Unified {
	out := make(map[string][]Unified)
	for _, d := range list {
		out[d.Collection] = append(out[d.Collection], d)
	}
	return out
}

// Statistics summarizes a devis list for dashboards.
type Statistics struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	ByCollection map[string]int `json:"byCollection"`
	TotalAmount  float64        `json:"totalAmount"`
}

func ComputeStatistics(list []Unified) Statistics {
	stats := Statistics{
		Total:        len(list),
		ByStatus:     make(map[string]int),
		ByCollection: make(map[string]int),
	}
	for _, d := range list {
		status := d.Status
		if status == "" {
			status = "Non défini"
		}
		stats.ByStatus[status]++
		stats.ByCollection[d.Collection]++
		stats.TotalAmount += d.Montant
	}
	return stats
}

// Search filters by a case-insensitive term over titre, numero, status and
// source collection. A blank term returns the list unchanged.
func Search(list []Unified, term string) []Unified {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	out := make([]Unified, 0, len(list))
	for _, d := range list {
		if strings.Contains(strings.ToLower(d.Titre), term) ||
			strings.Contains(strings.ToLower(d.Numero), term) ||
			strings.Contains(strings.ToLower(d.Status), term) ||
			strings.Contains(strings.ToLower(d.Collection), term) {
			out = append(out, d)
		}
	}
	return out
}
