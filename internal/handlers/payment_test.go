package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdnaneAD1/secure/internal/models"
	"github.com/AdnaneAD1/secure/internal/payments"
	"github.com/AdnaneAD1/secure/internal/revolut"
	"github.com/AdnaneAD1/secure/internal/services"

	"gorm.io/gorm"
)

func newPaymentHandler(t *testing.T, conn *gorm.DB, remote string) *PaymentHandler {
	t.Helper()
	client := revolut.NewClient("sk_test", remote, time.Second)
	return NewPaymentHandler(
		conn,
		payments.NewService(conn, slog.Default()),
		services.NewOrderService(conn, client, slog.Default()),
		payments.NewReconciler(conn, client, slog.Default()),
	)
}

func TestPaymentListScopedToProject(t *testing.T) {
	conn := setupHandlerDB(t)
	client, project, _, _, payment := seedPortalFixtures(t, conn)
	h := newPaymentHandler(t, conn, "http://127.0.0.1:0")

	r := asUser(httptest.NewRequest(http.MethodGet, "/payments?project_id="+project.ID, nil), client.ID)
	w := httptest.NewRecorder()
	h.List(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Items []models.Payment `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].ID != payment.ID {
		t.Fatalf("unexpected payments: %+v", resp)
	}
}

func TestConfirmationMissingIDIsError(t *testing.T) {
	conn := setupHandlerDB(t)
	client, _, _, _, _ := seedPortalFixtures(t, conn)
	h := newPaymentHandler(t, conn, "http://127.0.0.1:0")

	r := asUser(httptest.NewRequest(http.MethodGet, "/payments/confirmation", nil), client.ID)
	w := httptest.NewRecorder()
	h.Confirmation(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var res payments.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != payments.StateError {
		t.Fatalf("state = %q, want error", res.State)
	}
}

func TestConfirmationForeignPaymentIsNotFound(t *testing.T) {
	conn := setupHandlerDB(t)
	_, _, _, _, payment := seedPortalFixtures(t, conn)
	other := models.User{Email: "autre@test", Password: "x", Role: "client"}
	if err := conn.Create(&other).Error; err != nil {
		t.Fatalf("other: %v", err)
	}
	h := newPaymentHandler(t, conn, "http://127.0.0.1:0")

	r := asUser(httptest.NewRequest(http.MethodGet, "/payments/confirmation?paymentId="+payment.ID, nil), other.ID)
	w := httptest.NewRecorder()
	h.Confirmation(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestConfirmationRemoteStateWins(t *testing.T) {
	conn := setupHandlerDB(t)
	client, _, _, _, payment := seedPortalFixtures(t, conn)

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/orders/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(revolut.Order{ID: "ord_1", State: revolut.StatePaid})
	}))
	defer remote.Close()

	if err := conn.Model(&models.Payment{}).Where("id = ?", payment.ID).
		Update("revolut_payment_id", "ord_1").Error; err != nil {
		t.Fatalf("stamp order id: %v", err)
	}

	h := newPaymentHandler(t, conn, remote.URL)
	r := asUser(httptest.NewRequest(http.MethodGet, "/payments/confirmation?paymentId="+payment.ID, nil), client.ID)
	w := httptest.NewRecorder()
	h.Confirmation(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var res struct {
		payments.Result
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != payments.StateSuccess || res.RemoteState != revolut.StatePaid {
		t.Fatalf("result = %+v", res)
	}
	if res.Message != "Paiement validé !" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	conn := setupHandlerDB(t)
	client, _, _, _, _ := seedPortalFixtures(t, conn)
	h := newPaymentHandler(t, conn, "http://127.0.0.1:0")

	body := `{"amount":0,"currency":"eur"}`
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/revolut-order", strings.NewReader(body)), client.ID)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.CreateOrder(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "paymentId requis") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestCreateOrderStampsPayment(t *testing.T) {
	conn := setupHandlerDB(t)
	client, _, _, _, payment := seedPortalFixtures(t, conn)

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(revolut.Order{
			ID:          "ord_42",
			State:       "pending",
			CheckoutURL: "https://checkout.revolut.com/ord_42",
		})
	}))
	defer remote.Close()

	h := newPaymentHandler(t, conn, remote.URL)
	body := `{"amount":3600,"currency":"EUR","paymentId":"` + payment.ID + `"}`
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/revolut-order", strings.NewReader(body)), client.ID)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.CreateOrder(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var stored models.Payment
	if err := conn.First(&stored, "id = ?", payment.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.RevolutPaymentID != "ord_42" || stored.RevolutCheckoutURL != "https://checkout.revolut.com/ord_42" {
		t.Fatalf("payment not stamped: %+v", stored)
	}
}

func TestCreateOrderPropagatesProcessorError(t *testing.T) {
	conn := setupHandlerDB(t)
	client, _, _, _, payment := seedPortalFixtures(t, conn)

	const remoteBody = `{"code":"insufficient_permissions","message":"API key lacks merchant scope"}`
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		if _, err := w.Write([]byte(remoteBody)); err != nil {
			t.Errorf("write: %v", err)
		}
	}))
	defer remote.Close()

	h := newPaymentHandler(t, conn, remote.URL)
	body := `{"amount":3600,"currency":"EUR","paymentId":"` + payment.ID + `"}`
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/revolut-order", strings.NewReader(body)), client.ID)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.CreateOrder(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
	if w.Body.String() != remoteBody {
		t.Fatalf("processor body altered: %s", w.Body.String())
	}

	// l'échec distant ne doit rien écrire côté ledger
	var stored models.Payment
	if err := conn.First(&stored, "id = ?", payment.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.RevolutPaymentID != "" {
		t.Fatalf("payment stamped despite remote failure: %+v", stored)
	}
}
