package handlers

import (
	"errors"

	"github.com/AdnaneAD1/secure/internal/models"

	"gorm.io/gorm"
)

// ownsProject reports whether projectID exists and belongs to uid.
// The portal never reveals whether a project exists for someone else, so
// callers treat false as not-found.
func ownsProject(db *gorm.DB, uid, projectID string) bool {
	if uid == "" || projectID == "" {
		return false
	}
	var count int64
	if err := db.Model(&models.Project{}).
		Where("id = ? AND client_id = ?", projectID, uid).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// loadOwnedPayment fetches a payment and checks the owning project belongs
// to uid. found=false covers both a missing payment and one owned by
// someone else.
func loadOwnedPayment(db *gorm.DB, uid, paymentID string) (models.Payment, bool, error) {
	var p models.Payment
	if err := db.First(&p, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, false, nil
		}
		return models.Payment{}, false, err
	}
	if !ownsProject(db, uid, p.ProjectID) {
		return models.Payment{}, false, nil
	}
	return p, true, nil
}
