package models

import (
	"time"

	"gorm.io/gorm"
)

// Project artifacts browsed from the portal: notes, events, media, documents.
// Uploads themselves are handled elsewhere; these records only carry URLs.

type Note struct {
	ID          string `gorm:"primaryKey"`
	ProjectID   string `gorm:"column:project_id;index;not null"`
	AuthorID    string
	Title       string `gorm:"not null"`
	Content     string
	Recipients  []string `gorm:"serializer:json"`
	Attachments []string `gorm:"serializer:json"`
	CreatedAt   time.Time
}

func (n *Note) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = NewID()
	}
	return nil
}

type Event struct {
	ID          string `gorm:"primaryKey"`
	ProjectID   string `gorm:"column:project_id;index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Date        string // ISO-8601
	Type        string // réunion, livraison, chantier...
	CreatedAt   time.Time
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	return nil
}

type Media struct {
	ID        string `gorm:"primaryKey"`
	ProjectID string `gorm:"column:project_id;index;not null"`
	URL       string `gorm:"not null"`
	Title     string
	Type      string // photo, plan, video
	CreatedAt time.Time
}

func (m *Media) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}

type Document struct {
	ID        string `gorm:"primaryKey"`
	ProjectID string `gorm:"column:project_id;index;not null"`
	Name      string `gorm:"not null"`
	URL       string
	Type      string // contrat, facture, attestation...
	CreatedAt time.Time
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}
