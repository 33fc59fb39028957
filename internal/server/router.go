package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/httpx"
	"github.com/AdnaneAD1/secure/internal/config"
	"github.com/AdnaneAD1/secure/internal/devis"
	"github.com/AdnaneAD1/secure/internal/handlers"
	"github.com/AdnaneAD1/secure/internal/middleware"
	"github.com/AdnaneAD1/secure/internal/models"
	"github.com/AdnaneAD1/secure/internal/payments"
	"github.com/AdnaneAD1/secure/internal/revolut"
	"github.com/AdnaneAD1/secure/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	logger := slog.Default()
	mux := http.NewServeMux()

	// Sessions must reference a user that still exists.
	auth.SetUserVerifier(func(_ context.Context, uid string) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	devisSvc := devis.NewService(db, logger)
	paySvc := payments.NewService(db, logger)
	revClient := revolut.NewClient(cfg.RevolutAPIKey, cfg.RevolutAPIURL, cfg.RevolutTimeout)
	orderSvc := services.NewOrderService(db, revClient, logger)
	reconciler := payments.NewReconciler(db, revClient, logger)

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	// Project endpoints
	ph := handlers.NewProjectHandler(db, devisSvc)
	mux.Handle("/projects", protect(ph.List))
	mux.Handle("/projects/view", protect(ph.View))

	// Devis endpoints
	dh := handlers.NewDevisHandler(db, devisSvc)
	mux.Handle("/devis", protect(dh.List))
	mux.Handle("/devis/status", protect(dh.UpdateStatus))
	mux.Handle("/devis/pdf", protect(dh.PDF))

	// Payment endpoints
	payh := handlers.NewPaymentHandler(db, paySvc, orderSvc, reconciler)
	payh.BaseURL = cfg.BaseURL
	mux.Handle("/payments", protect(payh.List))
	mux.Handle("/payments/confirmation", protect(payh.Confirmation))
	mux.Handle("/api/revolut-order", protect(payh.CreateOrder))

	// Project artifacts
	ah := handlers.NewArtifactHandler(db)
	mux.Handle("/notes", protect(ah.Notes))
	mux.Handle("/events", protect(ah.Events))
	mux.Handle("/media", protect(ah.Media))
	mux.Handle("/documents", protect(ah.Documents))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("SecureAcompte portal API")); werr != nil {
			_ = werr
		}
	})

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
