// Package services holds the business operations behind the handlers.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AdnaneAD1/secure/internal/models"
	"github.com/AdnaneAD1/secure/internal/revolut"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("paiement introuvable")

// OrderCreator is the slice of the Revolut client the service needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req revolut.CreateOrderRequest) (revolut.Order, error)
}

// OrderService creates a remote checkout order for a local acompte and
// stamps the payment record with the checkout URL and remote order id.
type OrderService struct {
	db     *gorm.DB
	client OrderCreator
	log    *slog.Logger
}

func NewOrderService(db *gorm.DB, client OrderCreator, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{db: db, client: client, log: log}
}

type OrderInput struct {
	Amount      float64
	Currency    string
	PaymentID   string
	RedirectURL string
}

type OrderOutput struct {
	CheckoutURL      string `json:"checkout_url"`
	RevolutPaymentID string `json:"revolut_payment_id"`
}

// Create verifies the payment exists, creates the remote order, then
// persists both remote identifiers on the payment. A remote failure is
// returned as-is (possibly a *revolut.APIError) so the endpoint can
// propagate the processor's status and body verbatim.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (OrderOutput, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", in.PaymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderOutput{}, ErrPaymentNotFound
		}
		return OrderOutput{}, err
	}

	order, err := s.client.CreateOrder(ctx, revolut.CreateOrderRequest{
		Amount:      in.Amount,
		Currency:    in.Currency,
		RedirectURL: in.RedirectURL,
	})
	if err != nil {
		return OrderOutput{}, err
	}

	updates := map[string]any{
		"revolut_checkout_url": order.CheckoutURL,
		"revolut_payment_id":   order.ID,
	}
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
		// l'ordre distant existe mais le rattachement local a échoué
		s.log.Error("orders: could not stamp payment",
			"payment_id", payment.ID, "order_id", order.ID, "err", err)
		return OrderOutput{}, err
	}

	s.db.WithContext(ctx).Create(&models.AuditLog{
		EntityType: "Payment",
		EntityID:   payment.ID,
		Action:     "order_created",
		NewValue:   order.ID,
	})

	s.log.Info("orders: checkout order created", "payment_id", payment.ID, "order_id", order.ID)
	return OrderOutput{CheckoutURL: order.CheckoutURL, RevolutPaymentID: order.ID}, nil
}
