package pdf

import (
	"bytes"
	"testing"
)

func TestDevisPDF(t *testing.T) {
	data, err := DevisPDF(DevisData{
		Titre:       "Devis Cuisine Premium",
		Numero:      "DV-001",
		Status:      "Validé",
		Montant:     15000,
		ProjectName: "Villa Moderne",
		Date:        "2024-06-01",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a PDF, got %q...", data[:min(8, len(data))])
	}
}

func TestDevisPDFDefaultsTitle(t *testing.T) {
	data, err := DevisPDF(DevisData{Montant: 100, Status: "En attente"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty output")
	}
}
