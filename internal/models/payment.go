package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses as stored. Older records may carry informal values; only
// "validé" is treated as settled.
const (
	PaymentValide    = "validé"
	PaymentEnAttente = "en_attente"
)

// Acompte (deposit) attached to a project. Revolut fields are stamped once a
// remote checkout order has been created for this payment.
type Payment struct {
	ID          string `gorm:"primaryKey"`
	ProjectID   string `gorm:"column:project_id;index;not null"`
	Title       string
	Date        string `gorm:"not null"` // ISO-8601 date de l'échéance
	Description string
	Status      string   `gorm:"not null;default:'en_attente'"`
	Amount      float64  `gorm:"not null"`
	Images      []string `gorm:"serializer:json"`

	RevolutPaymentID   string `gorm:"column:revolut_payment_id"`
	RevolutCheckoutURL string `gorm:"column:revolut_checkout_url"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
