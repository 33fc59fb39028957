// Package revolut is a thin client for the Revolut Merchant API: order
// creation and order-status lookup, the only two calls the portal makes.
// The API key stays server-side; browsers only ever receive checkout URLs.
package revolut

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://merchant.revolut.com/api"

// Order states consumed by the confirmation reconciler.
const (
	StatePaid      = "paid"
	StateCompleted = "completed"
	StateFailed    = "failed"
	StateDeclined  = "declined"
)

// Client calls the Merchant API with a server-held bearer key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a client. baseURL empty means production; timeout caps
// every call (the observed original had none, which could hang a
// confirmation view forever).
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError carries the remote status and body verbatim so the proxy
// endpoint can propagate them unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("revolut: status %d: %s", e.StatusCode, e.Body)
}

type CreateOrderRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RedirectURL string  `json:"redirect_url,omitempty"`
}

type Order struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateOrder creates a checkout order and returns its id and checkout URL.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Order{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var order Order
	if err := c.do(httpReq, &order); err != nil {
		return Order{}, err
	}
	if order.ID == "" || order.CheckoutURL == "" {
		return Order{}, fmt.Errorf("revolut: checkout_url ou id manquant dans la réponse")
	}
	return order, nil
}

// GetOrder fetches the current state of an order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (Order, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/"+orderID, nil)
	if err != nil {
		return Order{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var order Order
	if err := c.do(httpReq, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return json.Unmarshal(data, out)
}
