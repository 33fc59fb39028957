package db

import (
	"testing"

	"github.com/AdnaneAD1/secure/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSeedIdempotent(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	var admins int64
	d.Model(&models.User{}).Where("role = ?", "admin").Count(&admins)
	if admins != 1 {
		t.Fatalf("expected exactly 1 admin got %d", admins)
	}
}

func TestNormalizeDSN(t *testing.T) {
	if got := NormalizeDSN(" 'postgres://u:p@h:5432/db?sslmode=disable' "); got != "postgres://u:p@h:5432/db?sslmode=disable" {
		t.Fatalf("url form mangled: %q", got)
	}
	got := NormalizeDSN("host=localhost  user=postgres dbname=secureacompte")
	if got != "host=localhost user=postgres dbname=secureacompte sslmode=disable" {
		t.Fatalf("kv form: %q", got)
	}
	if got := NormalizeDSN("not a dsn"); got != "not a dsn" {
		t.Fatalf("opaque value changed: %q", got)
	}
}
