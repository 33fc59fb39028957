package devis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Service fetches and mutates devis across every configured source.
type Service struct {
	db      *gorm.DB
	log     *slog.Logger
	sources []Source
}

func NewService(db *gorm.DB, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, log: log, sources: Sources}
}

// ForProject returns every devis of the project across all sources, newest
// first. The fetch is best-effort: one source failing is logged and skipped,
// the others still contribute. There is no referential integrity between
// the sources, so nothing stronger is possible.
func (s *Service) ForProject(ctx context.Context, projectID string, clientView bool) []Unified {
	all := make([]Unified, 0)
	for _, src := range s.sources {
		var rows []map[string]any
		err := s.db.WithContext(ctx).
			Table(src.Collection).
			Where(fmt.Sprintf("%s = ?", src.ProjectField), projectID).
			Find(&rows).Error
		if err != nil {
			s.log.Warn("devis: source fetch failed",
				"collection", src.Collection, "project_id", projectID, "err", err)
			continue
		}
		for _, raw := range rows {
			all = append(all, Normalize(raw, src.Collection, clientView))
		}
	}
	SortRecentFirst(all)
	return all
}

// ForClient returns only the devis a customer may see for the project, with
// the client display mapping applied and the same ordering as ForProject.
func (s *Service) ForClient(ctx context.Context, projectID string) []Unified {
	return VisibleToClient(s.ForProject(ctx, projectID, true))
}

// UpdateStatus writes a new status on the backing record and stamps
// updated_at plus the client action date. Returns false on unknown
// collection, missing record, or store error; the write is atomic per
// record, the caller handles messaging and retry.
func (s *Service) UpdateStatus(ctx context.Context, id, collection, newStatus string) bool {
	var src *Source
	for i := range s.sources {
		if s.sources[i].Collection == collection {
			src = &s.sources[i]
			break
		}
	}
	if src == nil {
		s.log.Warn("devis: update on unknown collection", "collection", collection)
		return false
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res := s.db.WithContext(ctx).
		Table(src.Collection).
		Where("id = ?", id).
		Updates(map[string]any{
			src.StatusField:      newStatus,
			"updated_at":         now,
			"client_action_date": now,
		})
	if res.Error != nil {
		s.log.Error("devis: status update failed",
			"id", id, "collection", collection, "err", res.Error)
		return false
	}
	if res.RowsAffected == 0 {
		s.log.Warn("devis: status update matched no record", "id", id, "collection", collection)
		return false
	}
	s.log.Info("devis: status updated", "id", id, "collection", collection, "status", newStatus)
	return true
}
