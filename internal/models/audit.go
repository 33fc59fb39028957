package models

import "time"

// Audit logging
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string // qui a fait la modification
	EntityType string // ex: "Devis", "Payment", "Project"
	EntityID   string // id de l'entité modifiée
	Action     string // ex: "create", "update", "status_change"
	Field      string // champ modifié (optionnel)
	OldValue   string // ancienne valeur (optionnel)
	NewValue   string // nouvelle valeur (optionnel)
	CreatedAt  time.Time
}
