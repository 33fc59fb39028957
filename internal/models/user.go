package models

import (
	"time"

	"gorm.io/gorm"
)

// Portal account. Role distinguishes the client portal from the back office.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"` // bcrypt hash
	Nom       string
	Prenom    string
	Telephone string
	Role      string `gorm:"not null;default:'client'"` // client, admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
