package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/httpx"
	devissvc "github.com/AdnaneAD1/secure/internal/devis"
	"github.com/AdnaneAD1/secure/internal/models"
	"github.com/AdnaneAD1/secure/internal/pdf"
	"github.com/AdnaneAD1/secure/validation"

	"gorm.io/gorm"
)

type DevisHandler struct {
	DB  *gorm.DB
	Svc *devissvc.Service
}

func NewDevisHandler(db *gorm.DB, svc *devissvc.Service) *DevisHandler {
	return &DevisHandler{DB: db, Svc: svc}
}

// List: GET /devis?project_id=&status=&q= – client-visible devis of a project,
// optionally filtered, with summary statistics.
func (h *DevisHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"project_id": "required"})
		return
	}
	if !ownsProject(h.DB, uid, projectID) {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	list := h.Svc.ForClient(r.Context(), projectID)
	list = devissvc.FilterByStatus(list, r.URL.Query().Get("status"))
	list = devissvc.Search(list, r.URL.Query().Get("q"))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": list,
		"stats": devissvc.ComputeStatistics(list),
	})
}

// UpdateStatus: POST /devis/status – the client accepts or refuses a devis.
func (h *DevisHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		ID         string `json:"id"`
		Collection string `json:"collection"`
		ProjectID  string `json:"project_id"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", req.ID, v)
	validation.Required("collection", req.Collection, v)
	validation.Required("project_id", req.ProjectID, v)
	validation.Required("status", req.Status, v)
	// un client ne peut qu'accepter ou refuser
	validation.OneOf("status", req.Status, []string{models.DevisValide, models.DevisRefuse}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if !ownsProject(h.DB, uid, req.ProjectID) {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	target, ok := h.findInProject(r, req.ProjectID, req.ID, req.Collection)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "devis_not_found", nil)
		return
	}
	// seuls les devis visibles client sont actionnables
	if target.OriginalStatus != models.DevisEnvoyeClient {
		httpx.JSONError(w, http.StatusConflict, "devis_not_actionable", nil)
		return
	}
	if !h.Svc.UpdateStatus(r.Context(), req.ID, req.Collection, req.Status) {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	h.DB.Create(&models.AuditLog{
		UserID:     uid,
		EntityType: "Devis",
		EntityID:   req.ID,
		Action:     "status_change",
		Field:      "status",
		OldValue:   target.OriginalStatus,
		NewValue:   req.Status,
	})
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// PDF: GET /devis/pdf?project_id=&id=&collection= – redirects to the stored
// rendering when one exists, otherwise renders a summary on the fly.
func (h *DevisHandler) PDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	q := r.URL.Query()
	projectID, id, collection := q.Get("project_id"), q.Get("id"), q.Get("collection")
	if projectID == "" || id == "" || collection == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"project_id": "required", "id": "required", "collection": "required"})
		return
	}
	if !ownsProject(h.DB, uid, projectID) {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	target, ok := h.findInProject(r, projectID, id, collection)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "devis_not_found", nil)
		return
	}
	if target.PdfURL != "" {
		http.Redirect(w, r, target.PdfURL, http.StatusFound)
		return
	}
	var project models.Project
	_ = h.DB.Select("name").First(&project, "id = ?", projectID).Error
	data, err := pdf.DevisPDF(pdf.DevisData{
		Titre:       target.Titre,
		Numero:      target.Numero,
		Type:        target.Type,
		Status:      target.Status,
		Montant:     target.Montant,
		ProjectName: project.Name,
		Date:        target.CreatedAt,
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"devis-"+sanitizeFilename(id)+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// findInProject resolves a devis through the client view so visibility rules
// apply uniformly to reads and actions.
func (h *DevisHandler) findInProject(r *http.Request, projectID, id, collection string) (devissvc.Unified, bool) {
	for _, d := range h.Svc.ForClient(r.Context(), projectID) {
		if d.ID == id && d.Collection == collection {
			return d, true
		}
	}
	return devissvc.Unified{}, false
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, s)
}
