package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/httpx"
	"github.com/AdnaneAD1/secure/internal/middleware"
	"github.com/AdnaneAD1/secure/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

type credentials struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Telephone string `json:"telephone"`
}

// decodeCredentials accepts JSON or classic form bodies, mirroring the
// dual-format pattern used across the handlers.
func decodeCredentials(r *http.Request) credentials {
	var c credentials
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&c)
	} else if err := r.ParseForm(); err == nil {
		c.Email = r.Form.Get("email")
		c.Password = r.Form.Get("password")
		c.Nom = r.Form.Get("nom")
		c.Prenom = r.Form.Get("prenom")
		c.Telephone = r.Form.Get("telephone")
	}
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return c
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	c := decodeCredentials(r)
	if c.Email == "" || c.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"email": "required", "password": "required"})
		return
	}
	var existing int64
	h.DB.Model(&models.User{}).Where("email = ?", c.Email).Count(&existing)
	if existing > 0 {
		httpx.JSONError(w, http.StatusConflict, "email_taken", nil)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	user := models.User{Email: c.Email, Password: string(hash), Nom: c.Nom, Prenom: c.Prenom, Telephone: c.Telephone, Role: "client"}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": user.ID, "email": user.Email, "role": user.Role})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	c := decodeCredentials(r)
	var user models.User
	if err := h.DB.Where("email = ?", c.Email).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(c.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"id": user.ID, "email": user.Email, "role": user.Role})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
		return
	}
	middleware.Flash(w, r, "logged_out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
