package models

import "gorm.io/gorm"

// Devis records live in two independently-evolved tables whose schemas
// diverged (field names, project reference column). The normalizer in
// internal/devis absorbs the fragmentation; the models below only describe
// the physical shapes.

// Devis statuses (internal vocabulary).
const (
	DevisBrouillon    = "Brouillon"
	DevisEnvoyeClient = "Envoyé au client"
	DevisEnAttente    = "En attente"
	DevisValide       = "Validé"
	DevisRefuse       = "Refusé"
)

// Devis is the historical table: French field names, project reference in
// id_projet, dates kept as ISO-8601 strings (possibly empty).
type Devis struct {
	ID               string `gorm:"primaryKey"`
	Titre            string
	Type             string
	Statut           string
	Montant          float64
	PdfURL           string `gorm:"column:pdf_url"`
	Numero           string
	IDProjet         string `gorm:"column:id_projet;index"`
	CreatedAt        string `gorm:"column:created_at"`
	UpdatedAt        string `gorm:"column:updated_at"`
	ClientActionDate string `gorm:"column:client_action_date"`
}

func (Devis) TableName() string { return "devis" }

func (d *Devis) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}

// DevisConfig is the newer table written by the configurator: English field
// names and a project_id reference.
type DevisConfig struct {
	ID               string `gorm:"primaryKey"`
	Title            string
	Type             string
	Status           string
	Montant          float64
	PdfURL           string   `gorm:"column:pdf_url"`
	Numero           string
	SelectedItems    []string `gorm:"serializer:json"`
	ProjectID        string   `gorm:"column:project_id;index"`
	CreatedAt        string   `gorm:"column:created_at"`
	UpdatedAt        string   `gorm:"column:updated_at"`
	ClientActionDate string   `gorm:"column:client_action_date"`
}

func (DevisConfig) TableName() string { return "devis_config" }

func (d *DevisConfig) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}
