package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

type OrderStatus string

const (
	PaymentMethodCOD    PaymentMethod = "cash_on_delivery"
	PaymentMethodOnline PaymentMethod = "online"

	OrderStatusConfirmedCOD   OrderStatus = "confirmed_cod"
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
)

// Order is an immutable purchase record. Items and Address are snapshots
// taken at commit time; the history slot is append-only and never mutated
// or deleted by the engine.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	OwnerID       uuid.UUID     `json:"owner_id"`
	Items         []CartItem    `json:"items"`
	Address       Address       `json:"address"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Terminal reports whether the order reached a durable success state.
// A pending_payment draft is not terminal; it only becomes durable once
// the payment capture succeeds.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusConfirmedCOD || o.Status == OrderStatusPaid
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// ReorderRequest carries a historical item snapshot back into the cart.
// The snapshot's own quantity is preserved, not reset to 1.
type ReorderRequest struct {
	Item CartItem `json:"item" validate:"required"`
}

// CaptureDraftRequest is the simulated-payment hand-off: the pending draft
// travels by value from the checkout response to this call, since the cart
// slot can no longer be consulted once an order commits.
type CaptureDraftRequest struct {
	Draft Order `json:"draft" validate:"required"`
}
