package db

import (
	"os"
	"time"

	"github.com/AdnaneAD1/secure/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed installs baseline data and is safe to run on every startup.
// Today that is only the back-office account, created once.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	pass := os.Getenv("ADMIN_PASSWORD")
	if pass == "" {
		pass = "admin"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:     "admin@secureacompte.fr",
		Password:  string(hash),
		Nom:       "SecureAcompte",
		Prenom:    "Admin",
		Role:      "admin",
		CreatedAt: time.Now(),
	}
	return db.Create(&admin).Error
}
