package revolut

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Fatalf("auth header: %q", got)
		}
		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Amount != 2500 || req.Currency != "EUR" {
			t.Fatalf("payload: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(Order{ID: "rev-1", State: "pending", CheckoutURL: "https://checkout/rev-1"})
	}))
	defer srv.Close()

	c := NewClient("sk_test", srv.URL, time.Second)
	order, err := c.CreateOrder(context.Background(), CreateOrderRequest{Amount: 2500, Currency: "EUR"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID != "rev-1" || order.CheckoutURL != "https://checkout/rev-1" {
		t.Fatalf("order: %+v", order)
	}
}

func TestCreateOrderRejectsIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "rev-1"}) // pas de checkout_url
	}))
	defer srv.Close()
	c := NewClient("k", srv.URL, time.Second)
	if _, err := c.CreateOrder(context.Background(), CreateOrderRequest{Amount: 1, Currency: "EUR"}); err == nil {
		t.Fatalf("expected error on incomplete response")
	}
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"amount too low"}`))
	}))
	defer srv.Close()
	c := NewClient("k", srv.URL, time.Second)
	_, err := c.GetOrder(context.Background(), "rev-9")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Body != `{"message":"amount too low"}` {
		t.Fatalf("verbatim propagation broken: %+v", apiErr)
	}
}

func TestGetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/rev-2" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Order{ID: "rev-2", State: StatePaid})
	}))
	defer srv.Close()
	c := NewClient("k", srv.URL, time.Second)
	order, err := c.GetOrder(context.Background(), "rev-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if order.State != StatePaid {
		t.Fatalf("state: %q", order.State)
	}
}
