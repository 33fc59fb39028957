package payments

import (
	"context"
	"log/slog"

	"github.com/AdnaneAD1/secure/internal/models"

	"gorm.io/gorm"
)

// Service lists acomptes for the portal pages.
type Service struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewService(db *gorm.DB, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, log: log}
}

// ForProject returns the project's acomptes, most recent due date first.
func (s *Service) ForProject(ctx context.Context, projectID string) ([]models.Payment, error) {
	var list []models.Payment
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ClientPayment carries the project name next to the payment for the
// all-payments page.
type ClientPayment struct {
	models.Payment
	Project string `json:"project"`
}

// ForClient returns every acompte across the client's projects with the
// owning project's name attached. A client with no projects gets an empty
// list, not an error.
func (s *Service) ForClient(ctx context.Context, clientID string) ([]ClientPayment, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Select("id", "name").
		Where("client_id = ?", clientID).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []ClientPayment{}, nil
	}
	ids := make([]string, 0, len(projects))
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		name := p.Name
		if name == "" {
			name = "Projet sans nom"
		}
		names[p.ID] = name
	}
	var raw []models.Payment
	if err := s.db.WithContext(ctx).
		Where("project_id IN ?", ids).
		Order("date desc").
		Find(&raw).Error; err != nil {
		return nil, err
	}
	out := make([]ClientPayment, 0, len(raw))
	for _, p := range raw {
		name, ok := names[p.ProjectID]
		if !ok {
			name = "Projet inconnu"
		}
		out = append(out, ClientPayment{Payment: p, Project: name})
	}
	return out, nil
}
