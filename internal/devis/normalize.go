// Package devis normalizes quote records coming from two independently-
// evolved tables and decides what a client may see. The tables kept the
// shapes they had in the original document store: field names diverge
// (titre/title, statut/status) and the project reference column differs per
// table, so everything funnels through one coalescing normalizer.
package devis

import (
	"github.com/AdnaneAD1/secure/internal/models"
)

// Source describes one backing table for devis records.
type Source struct {
	Collection   string // table name
	ProjectField string // column referencing the owning project
	StatusField  string // column carrying the lifecycle status
}

// Sources lists every backing table, in fetch order. Extend here when a new
// devis-producing tool appears; nothing else hardcodes table names.
var Sources = []Source{
	{Collection: "devis", ProjectField: "id_projet", StatusField: "statut"},
	{Collection: "devis_config", ProjectField: "project_id", StatusField: "status"},
}

// Unified is the single client-facing shape for a devis, whichever table it
// came from. OriginalStatus always keeps the pre-mapping value; Status is
// what gets displayed.
type Unified struct {
	ID      string  `json:"id"`
	Titre   string  `json:"titre,omitempty"`
	Type    string  `json:"type,omitempty"`
	Status  string  `json:"status,omitempty"`
	Montant float64 `json:"montant,omitempty"`
	PdfURL  string  `json:"pdfUrl,omitempty"`
	Numero  string  `json:"numero,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	Collection     string `json:"_collection"`
	Kind           string `json:"_type"` // toujours "devis"
	OriginalStatus string `json:"_originalStatus,omitempty"`
}

// MapStatusForClient hides the internal "sent" state from clients: the only
// substitution defined. Every other status passes through unchanged.
func MapStatusForClient(status string) string {
	if status == models.DevisEnvoyeClient {
		return models.DevisEnAttente
	}
	return status
}

// Normalize converts a raw row into the unified shape. Synonym fields are
// coalesced first-non-empty; absent fields stay zero-valued, never an error.
// clientView applies the display mapping; the original status is preserved
// either way.
func Normalize(raw map[string]any, collection string, clientView bool) Unified {
	original := str(raw, "status", "statut")
	status := original
	if clientView {
		status = MapStatusForClient(original)
	}
	return Unified{
		ID:             str(raw, "id"),
		Titre:          str(raw, "titre", "title"),
		Type:           str(raw, "type"),
		Status:         status,
		Montant:        num(raw, "montant", "amount"),
		PdfURL:         str(raw, "pdf_url", "pdfUrl"),
		Numero:         str(raw, "numero"),
		CreatedAt:      str(raw, "created_at", "createdAt"),
		UpdatedAt:      str(raw, "updated_at", "updatedAt"),
		Collection:     collection,
		Kind:           "devis",
		OriginalStatus: original,
	}
}

// VisibleToClient keeps only devis a customer may see: those whose original
// status is "Envoyé au client" or "Validé". Filtering on OriginalStatus
// makes the operation idempotent under the display mapping.
func VisibleToClient(list []Unified) []Unified {
	out := make([]Unified, 0, len(list))
	for _, d := range list {
		if d.OriginalStatus == models.DevisEnvoyeClient || d.OriginalStatus == models.DevisValide {
			out = append(out, d)
		}
	}
	return out
}

// str returns the first non-empty string among the given keys.
func str(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// num returns the first numeric value among the given keys. Drivers disagree
// on numeric scan types, hence the switch.
func num(raw map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int64:
			return float64(v)
		case int:
			return float64(v)
		}
	}
	return 0
}
