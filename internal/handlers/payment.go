package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/AdnaneAD1/secure/auth"
	"github.com/AdnaneAD1/secure/httpx"
	"github.com/AdnaneAD1/secure/i18n"
	"github.com/AdnaneAD1/secure/internal/middleware"
	"github.com/AdnaneAD1/secure/internal/payments"
	"github.com/AdnaneAD1/secure/internal/revolut"
	"github.com/AdnaneAD1/secure/internal/services"
	"github.com/AdnaneAD1/secure/validation"

	"gorm.io/gorm"
)

type PaymentHandler struct {
	DB         *gorm.DB
	Payments   *payments.Service
	Orders     *services.OrderService
	Reconciler *payments.Reconciler
	// BaseURL builds the default checkout return URL when the caller does
	// not supply one.
	BaseURL string

	// one confirmation slot per session: a re-check for a new paymentId
	// invalidates any still-running check from the same viewer
	mu         sync.Mutex
	confirmers map[string]*payments.Confirmer
}

func NewPaymentHandler(db *gorm.DB, pay *payments.Service, orders *services.OrderService, rec *payments.Reconciler) *PaymentHandler {
	return &PaymentHandler{
		DB:         db,
		Payments:   pay,
		Orders:     orders,
		Reconciler: rec,
		confirmers: make(map[string]*payments.Confirmer),
	}
}

// List: GET /payments?project_id= – the project's acomptes, or every acompte
// across the client's projects when no project is given.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	projectID := r.URL.Query().Get("project_id")
	if projectID != "" {
		if !ownsProject(h.DB, uid, projectID) {
			httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
			return
		}
		list, err := h.Payments.ForProject(r.Context(), projectID)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": list, "total": len(list)})
		return
	}
	list, err := h.Payments.ForClient(r.Context(), uid)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": list, "total": len(list)})
}

// Confirmation: GET /payments/confirmation?paymentId= – reconciles the local
// ledger with the remote order state and returns the display state.
func (h *PaymentHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	paymentID := r.URL.Query().Get("paymentId")
	if paymentID == "" {
		httpx.JSON(w, http.StatusBadRequest, confirmationBody(r, payments.Result{State: payments.StateError}))
		return
	}
	if _, ok, err := loadOwnedPayment(h.DB, uid, paymentID); err != nil || !ok {
		// même réponse qu'un paiement inconnu
		httpx.JSON(w, http.StatusNotFound, confirmationBody(r, payments.Result{State: payments.StateError}))
		return
	}
	c := h.confirmerFor(uid)
	settled := c.Check(r.Context(), paymentID)
	<-settled
	res := c.Current()
	status := http.StatusOK
	if res.State == payments.StateError {
		status = http.StatusConflict
	}
	httpx.JSON(w, status, confirmationBody(r, res))
}

type confirmationResponse struct {
	payments.Result
	Message string `json:"message,omitempty"`
}

// confirmationBody attaches the localized label the confirmation view shows
// for each display state.
func confirmationBody(r *http.Request, res payments.Result) confirmationResponse {
	lang := middleware.LangFrom(r)
	msg := ""
	switch res.State {
	case payments.StateSuccess:
		msg = i18n.T(lang, "payment_success")
	case payments.StatePending:
		msg = i18n.T(lang, "payment_pending")
	case payments.StateError:
		msg = i18n.T(lang, "payment_not_found")
	}
	return confirmationResponse{Result: res, Message: msg}
}

func (h *PaymentHandler) confirmerFor(uid string) *payments.Confirmer {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.confirmers[uid]
	if !ok {
		c = payments.NewConfirmer(h.Reconciler)
		h.confirmers[uid] = c
	}
	return c
}

// CreateOrder: POST /api/revolut-order – creates a Revolut checkout order
// for an acompte. amount, currency and paymentId are required; remote
// processor errors are propagated with their status and body untouched.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "Méthode non autorisée", nil)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		Amount      float64 `json:"amount"`
		Currency    string  `json:"currency"`
		PaymentID   string  `json:"paymentId"`
		RedirectURL string  `json:"redirect_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.PositiveFloat("amount", req.Amount, v)
	validation.Required("currency", req.Currency, v)
	validation.Currency("currency", req.Currency, v)
	validation.Required("paymentId", req.PaymentID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "amount, currency et paymentId requis", v)
		return
	}
	if _, ok, err := loadOwnedPayment(h.DB, uid, req.PaymentID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "lookup_failed", nil)
		return
	} else if !ok {
		httpx.JSONError(w, http.StatusNotFound, "payment_not_found", nil)
		return
	}

	redirect := req.RedirectURL
	if redirect == "" && h.BaseURL != "" {
		redirect = h.BaseURL + "/payments/confirmation?paymentId=" + url.QueryEscape(req.PaymentID)
	}
	out, err := h.Orders.Create(r.Context(), services.OrderInput{
		Amount:      req.Amount,
		Currency:    req.Currency,
		PaymentID:   req.PaymentID,
		RedirectURL: redirect,
	})
	if err != nil {
		var apiErr *revolut.APIError
		if errors.As(err, &apiErr) {
			// statut et corps du processeur transmis tels quels
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(apiErr.StatusCode)
			if _, werr := w.Write([]byte(apiErr.Body)); werr != nil {
				_ = werr
			}
			return
		}
		if errors.Is(err, services.ErrPaymentNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "payment_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "order_creation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
