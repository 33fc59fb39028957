package main

import (
	"fmt"
	"log"
	"time"

	"github.com/AdnaneAD1/secure/internal/db"
	"github.com/AdnaneAD1/secure/internal/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed de démonstration: un client, deux projets, des devis dans les deux
// tables et quelques acomptes.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	conn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatal("Erreur connexion DB:", err)
	}

	fmt.Println("Démarrage du seed de démonstration...")
	if err := seedDemo(conn); err != nil {
		log.Fatal("Erreur lors du seed:", err)
	}
	fmt.Println("Seed terminé avec succès.")
	fmt.Println("Compte de démo: client@demo.fr / demo1234")
}

func seedDemo(conn *gorm.DB) error {
	var existing int64
	conn.Model(&models.User{}).Where("email = ?", "client@demo.fr").Count(&existing)
	if existing > 0 {
		fmt.Println("Données de démo déjà présentes, rien à faire.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	client := models.User{
		Email:    "client@demo.fr",
		Password: string(hash),
		Nom:      "Durand",
		Prenom:   "Sophie",
		Role:     "client",
	}
	if err := conn.Create(&client).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	iso := func(d time.Duration) string { return now.Add(d).Format(time.RFC3339) }

	renovation := models.Project{
		Name:             "Rénovation appartement Haussmannien",
		Description:      "Rénovation complète d'un T4 de 95m2, Paris 9e.",
		Budget:           85000,
		PaidAmount:       12000,
		StartDate:        iso(-60 * 24 * time.Hour),
		EstimatedEndDate: iso(120 * 24 * time.Hour),
		Status:           "En cours",
		Progress:         35,
		Type:             "Rénovation",
		Location:         "Paris 9e",
		ClientID:         client.ID,
		BrokerName:       "Julien Mercier",
		BrokerCompany:    "Atelier Mercier",
		BrokerRating:     4.8,
	}
	extension := models.Project{
		Name:        "Extension maison Bordeaux",
		Description: "Extension bois de 30m2 avec baie vitrée.",
		Budget:      62000,
		Status:      "En attente",
		Type:        "Extension",
		Location:    "Bordeaux",
		ClientID:    client.ID,
	}
	for _, p := range []*models.Project{&renovation, &extension} {
		if err := conn.Create(p).Error; err != nil {
			return err
		}
	}

	devisLegacy := []models.Devis{
		{
			Titre:     "Devis gros oeuvre",
			Type:      "travaux",
			Statut:    models.DevisEnvoyeClient,
			Montant:   32000,
			Numero:    "DEV-2026-014",
			IDProjet:  renovation.ID,
			CreatedAt: iso(-20 * 24 * time.Hour),
			UpdatedAt: iso(-18 * 24 * time.Hour),
		},
		{
			Titre:            "Devis plomberie",
			Type:             "travaux",
			Statut:           models.DevisValide,
			Montant:          8400,
			Numero:           "DEV-2026-009",
			IDProjet:         renovation.ID,
			CreatedAt:        iso(-40 * 24 * time.Hour),
			UpdatedAt:        iso(-30 * 24 * time.Hour),
			ClientActionDate: iso(-30 * 24 * time.Hour),
		},
		{
			Titre:    "Devis électricité (brouillon)",
			Type:     "travaux",
			Statut:   models.DevisBrouillon,
			Montant:  6100,
			IDProjet: renovation.ID,
		},
	}
	for i := range devisLegacy {
		if err := conn.Create(&devisLegacy[i]).Error; err != nil {
			return err
		}
	}

	devisConfig := []models.DevisConfig{
		{
			Title:         "Devis configurateur cuisine",
			Type:          "configurateur",
			Status:        models.DevisEnvoyeClient,
			Montant:       14500,
			Numero:        "CFG-2026-003",
			SelectedItems: []string{"plan de travail quartz", "îlot central", "électroménager encastré"},
			ProjectID:     renovation.ID,
			CreatedAt:     iso(-5 * 24 * time.Hour),
			UpdatedAt:     iso(-5 * 24 * time.Hour),
		},
		{
			Title:         "Devis extension bois",
			Type:          "configurateur",
			Status:        models.DevisEnvoyeClient,
			Montant:       58000,
			Numero:        "CFG-2026-004",
			SelectedItems: []string{"ossature bois", "baie vitrée 4m"},
			ProjectID:     extension.ID,
			CreatedAt:     iso(-2 * 24 * time.Hour),
			UpdatedAt:     iso(-2 * 24 * time.Hour),
		},
	}
	for i := range devisConfig {
		if err := conn.Create(&devisConfig[i]).Error; err != nil {
			return err
		}
	}

	paiements := []models.Payment{
		{
			ProjectID:   renovation.ID,
			Title:       "Acompte gros oeuvre",
			Date:        iso(-15 * 24 * time.Hour),
			Description: "30% à la signature du devis gros oeuvre",
			Status:      models.PaymentValide,
			Amount:      9600,
		},
		{
			ProjectID:   renovation.ID,
			Title:       "Acompte plomberie",
			Date:        iso(5 * 24 * time.Hour),
			Description: "Acompte de démarrage plomberie",
			Status:      models.PaymentEnAttente,
			Amount:      2520,
		},
		{
			ProjectID: extension.ID,
			Title:     "Acompte étude extension",
			Date:      iso(10 * 24 * time.Hour),
			Status:    models.PaymentEnAttente,
			Amount:    1800,
		},
	}
	for i := range paiements {
		if err := conn.Create(&paiements[i]).Error; err != nil {
			return err
		}
	}

	notes := []models.Note{
		{
			ProjectID:  renovation.ID,
			Title:      "Devis cuisine disponible",
			Content:    "Le devis cuisine est disponible, merci de le valider avant fin de mois.",
			AuthorID:   client.ID,
			Recipients: []string{client.Email},
		},
	}
	for i := range notes {
		if err := conn.Create(&notes[i]).Error; err != nil {
			return err
		}
	}

	fmt.Printf("Créé: 1 client, 2 projets, %d devis, %d devis_config, %d paiements\n",
		len(devisLegacy), len(devisConfig), len(paiements))
	return nil
}
