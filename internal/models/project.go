package models

import (
	"time"

	"gorm.io/gorm"
)

// Construction/renovation project followed on the portal.
type Project struct {
	ID               string `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	Description      string
	Budget           float64
	PaidAmount       float64
	StartDate        string // ISO-8601, optionnel
	EstimatedEndDate string
	Status           string `gorm:"not null"` // En cours, En attente, Terminé, Annulé
	Progress         int
	Type             string
	Location         string
	ClientID         string `gorm:"column:client_id;index;not null"`

	// Courtier associé au projet (dénormalisé, affichage uniquement)
	BrokerName    string
	BrokerCompany string
	BrokerRating  float64
	BrokerImage   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
