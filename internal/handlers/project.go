package handlers

import (
	"net/http"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/httpx"
	"github.com/AdnaneAD1/secure/internal/devis"
	"github.com/AdnaneAD1/secure/internal/models"

	"gorm.io/gorm"
)

type ProjectHandler struct {
	DB    *gorm.DB
	Devis *devis.Service
}

func NewProjectHandler(db *gorm.DB, svc *devis.Service) *ProjectHandler {
	return &ProjectHandler{DB: db, Devis: svc}
}

// List: GET /projects – the authenticated client's projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	var projects []models.Project
	if err := h.DB.Where("client_id = ?", uid).Order("created_at desc").Find(&projects).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_projects", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": projects, "total": len(projects)})
}

// View: GET /projects/view?id= – project detail plus its client-visible devis.
func (h *ProjectHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	var project models.Project
	if err := h.DB.First(&project, "id = ? AND client_id = ?", id, uid).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	list := h.Devis.ForClient(r.Context(), project.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"project": project, "devis": list})
}
