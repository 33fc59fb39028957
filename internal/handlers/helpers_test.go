package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/internal/db"
	"github.com/AdnaneAD1/secure/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// seedPortalFixtures creates a client with one project carrying devis in both
// backing tables and one pending acompte.
func seedPortalFixtures(t *testing.T, conn *gorm.DB) (client models.User, project models.Project, sent models.Devis, validated models.DevisConfig, payment models.Payment) {
	t.Helper()
	client = models.User{Email: "client@test", Password: "x", Nom: "Test", Role: "client"}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	project = models.Project{Name: "Rénovation test", Status: "En cours", ClientID: client.ID}
	if err := conn.Create(&project).Error; err != nil {
		t.Fatalf("project: %v", err)
	}
	sent = models.Devis{
		Titre:     "Devis maçonnerie",
		Statut:    models.DevisEnvoyeClient,
		Montant:   12000,
		Numero:    "DEV-001",
		IDProjet:  project.ID,
		CreatedAt: "2026-02-10T09:00:00Z",
	}
	if err := conn.Create(&sent).Error; err != nil {
		t.Fatalf("devis: %v", err)
	}
	validated = models.DevisConfig{
		Title:     "Devis configurateur",
		Status:    models.DevisValide,
		Montant:   4500,
		Numero:    "CFG-001",
		ProjectID: project.ID,
		CreatedAt: "2026-01-05T09:00:00Z",
	}
	if err := conn.Create(&validated).Error; err != nil {
		t.Fatalf("devis_config: %v", err)
	}
	payment = models.Payment{
		ProjectID: project.ID,
		Title:     "Acompte maçonnerie",
		Date:      "2026-02-15T00:00:00Z",
		Status:    models.PaymentEnAttente,
		Amount:    3600,
	}
	if err := conn.Create(&payment).Error; err != nil {
		t.Fatalf("payment: %v", err)
	}
	return
}

// asUser attaches an authenticated user id to the request context.
func asUser(r *http.Request, uid string) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), uid))
}
