// Package payments covers acompte listings and the payment-confirmation
// reconciliation between the local ledger and the Revolut order state.
package payments

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/AdnaneAD1/secure/internal/models"
	"github.com/AdnaneAD1/secure/internal/revolut"

	"gorm.io/gorm"
)

// DisplayState is what the confirmation view renders.
type DisplayState string

const (
	StateLoading DisplayState = "loading"
	StateSuccess DisplayState = "success"
	StatePending DisplayState = "pending"
	StateError   DisplayState = "error"
)

// OrderStatusClient is the slice of the Revolut client the reconciler needs.
type OrderStatusClient interface {
	GetOrder(ctx context.Context, orderID string) (revolut.Order, error)
}

// Result is a read-time projection; it is never written back to the ledger.
type Result struct {
	State       DisplayState `json:"state"`
	RemoteState string       `json:"remoteState,omitempty"`
}

// Reconciler derives a display state for a payment from the local record
// and, when one exists, the remote order.
type Reconciler struct {
	db     *gorm.DB
	orders OrderStatusClient
	log    *slog.Logger
}

func NewReconciler(db *gorm.DB, orders OrderStatusClient, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{db: db, orders: orders, log: log}
}

// Reconcile resolves paymentID to one of success/pending/error.
//
// The local record gives a tentative state ("validé" → success, anything
// else → pending). When the payment carries a remote order id, the remote
// state is authoritative and overrides the tentative one; a failing remote
// query degrades silently to the tentative state. An empty id or a missing
// record is a terminal error with no remote call.
func (r *Reconciler) Reconcile(ctx context.Context, paymentID string) Result {
	if strings.TrimSpace(paymentID) == "" {
		return Result{State: StateError}
	}
	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("payments: confirmation for unknown payment", "payment_id", paymentID)
		} else {
			r.log.Error("payments: lookup failed", "payment_id", paymentID, "err", err)
		}
		return Result{State: StateError}
	}

	res := Result{State: StatePending}
	if p.Status == models.PaymentValide {
		res.State = StateSuccess
	}
	if p.RevolutPaymentID == "" || r.orders == nil {
		return res
	}

	order, err := r.orders.GetOrder(ctx, p.RevolutPaymentID)
	if err != nil {
		// best effort: l'état local tient lieu de résultat
		r.log.Warn("payments: remote status unavailable",
			"payment_id", paymentID, "order_id", p.RevolutPaymentID, "err", err)
		return res
	}
	if order.State == "" {
		return res
	}
	res.RemoteState = order.State
	switch order.State {
	case revolut.StatePaid, revolut.StateCompleted:
		res.State = StateSuccess
	case revolut.StateFailed, revolut.StateDeclined:
		res.State = StateError
	default:
		res.State = StatePending
	}
	return res
}

// Confirmer owns one confirmation view's result slot. Re-checking with a new
// payment id bumps a generation captured by the in-flight reconciliation, so
// a stale result can never overwrite a newer one.
type Confirmer struct {
	rec *Reconciler

	mu     sync.Mutex
	gen    uint64
	result Result
}

func NewConfirmer(rec *Reconciler) *Confirmer {
	return &Confirmer{rec: rec, result: Result{State: StateLoading}}
}

// Check starts a reconciliation for paymentID. The view goes back to
// loading until the matching result commits. The returned channel closes
// once this invocation has settled (committed or been discarded), which is
// only needed by callers that want a synchronization point.
func (c *Confirmer) Check(ctx context.Context, paymentID string) <-chan struct{} {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.result = Result{State: StateLoading}
	c.mu.Unlock()

	settled := make(chan struct{})
	go func() {
		defer close(settled)
		res := c.rec.Reconcile(ctx, paymentID)
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen {
			// une vérification plus récente a pris la main
			return
		}
		c.result = res
	}()
	return settled
}

// Current returns the latest committed result (loading until then).
func (c *Confirmer) Current() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}
