// Package pdf renders devis documents server-side for devis that carry no
// pre-rendered pdfUrl.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DevisData is everything the rendering needs, already resolved by the
// caller (no store access here).
type DevisData struct {
	Titre       string
	Numero      string
	Type        string
	Status      string
	Montant     float64
	ProjectName string
	Date        string
}

// DevisPDF renders a one-page summary of the devis.
func DevisPDF(data DevisData) ([]byte, error) {
	m := maroto.New()

	title := data.Titre
	if title == "" {
		title = "Devis"
	}
	m.AddRows(text.NewRow(14, title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRows(text.NewRow(8, "SecureAcompte - récapitulatif de devis", props.Text{Size: 9, Align: align.Center}))

	if data.Numero != "" {
		m.AddRows(text.NewRow(7, fmt.Sprintf("Numéro : %s", data.Numero), props.Text{Size: 10}))
	}
	if data.ProjectName != "" {
		m.AddRows(text.NewRow(7, fmt.Sprintf("Projet : %s", data.ProjectName), props.Text{Size: 10}))
	}
	if data.Type != "" {
		m.AddRows(text.NewRow(7, fmt.Sprintf("Type : %s", data.Type), props.Text{Size: 10}))
	}
	if data.Date != "" {
		m.AddRows(text.NewRow(7, fmt.Sprintf("Date : %s", data.Date), props.Text{Size: 10}))
	}
	m.AddRows(text.NewRow(7, fmt.Sprintf("Statut : %s", data.Status), props.Text{Size: 10}))
	m.AddRows(text.NewRow(10, fmt.Sprintf("Montant : %.2f EUR", data.Montant),
		props.Text{Size: 12, Style: fontstyle.Bold}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
