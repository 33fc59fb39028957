package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/httpx"
	"github.com/AdnaneAD1/secure/internal/models"
	"github.com/AdnaneAD1/secure/validation"

	"gorm.io/gorm"
)

// ArtifactHandler serves the project's side collections: notes, events,
// media and documents. All reads are project-scoped and ownership-checked.
type ArtifactHandler struct{ DB *gorm.DB }

func NewArtifactHandler(db *gorm.DB) *ArtifactHandler { return &ArtifactHandler{DB: db} }

func (h *ArtifactHandler) projectFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, _ := auth.UserIDFromContext(r.Context())
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"project_id": "required"})
		return "", false
	}
	if !ownsProject(h.DB, uid, projectID) {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return "", false
	}
	return projectID, true
}

func (h *ArtifactHandler) Notes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		projectID, ok := h.projectFromQuery(w, r)
		if !ok {
			return
		}
		var notes []models.Note
		if err := h.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&notes).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_notes", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": notes, "total": len(notes)})
	case http.MethodPost:
		h.createNote(w, r)
	default:
		httpx.MethodNotAllowed(w, "GET,POST")
	}
}

func (h *ArtifactHandler) createNote(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		ProjectID  string   `json:"project_id"`
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		Recipients []string `json:"recipients"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("project_id", req.ProjectID, v)
	validation.Required("title", req.Title, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if !ownsProject(h.DB, uid, req.ProjectID) {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	// destinataires: adresses non vides uniquement
	recipients := make([]string, 0, len(req.Recipients))
	for _, rcpt := range req.Recipients {
		if s := strings.TrimSpace(rcpt); s != "" {
			recipients = append(recipients, s)
		}
	}
	note := models.Note{ProjectID: req.ProjectID, AuthorID: uid, Title: req.Title, Content: req.Content, Recipients: recipients}
	if err := h.DB.Create(&note).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, note)
}

func (h *ArtifactHandler) Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	projectID, ok := h.projectFromQuery(w, r)
	if !ok {
		return
	}
	var events []models.Event
	if err := h.DB.Where("project_id = ?", projectID).Order("date desc").Find(&events).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_events", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": events, "total": len(events)})
}

func (h *ArtifactHandler) Media(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	projectID, ok := h.projectFromQuery(w, r)
	if !ok {
		return
	}
	var media []models.Media
	if err := h.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&media).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_media", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": media, "total": len(media)})
}

func (h *ArtifactHandler) Documents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	projectID, ok := h.projectFromQuery(w, r)
	if !ok {
		return
	}
	var docs []models.Document
	if err := h.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&docs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_documents", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": docs, "total": len(docs)})
}
