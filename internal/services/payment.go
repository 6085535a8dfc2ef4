package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/metrics"
	"github.com/kharidoapp/checkout-engine/internal/models"
)

// PaymentService is the external-boundary stand-in for a real payment
// capture. It receives the pending draft by value (the cart may already be
// on its way out) and always succeeds: there is no declined or timed-out
// payment in this engine.
type PaymentService struct {
	orders *OrderService
}

func NewPaymentService(orders *OrderService) *PaymentService {
	return &PaymentService{orders: orders}
}

// CaptureDraft turns a pending_payment draft into a durable paid order,
// appends it to the history and clears the cart. Ownership, method, status
// and total are fixed server-side; the draft only supplies the snapshot.
func (s *PaymentService) CaptureDraft(ctx context.Context, principal models.Principal, draft models.Order) (*models.Order, error) {

	if len(draft.Items) == 0 {
		return nil, errors.BadRequestError("Cannot capture payment for a draft with no items")
	}

	if !draft.Address.Complete() {
		return nil, errors.BadRequestError("Cannot capture payment for a draft without a complete address")
	}

	order := draft
	order.Items = snapshotItems(draft.Items)

	for i := range order.Items {
		if order.Items[i].Quantity < 1 {
			order.Items[i].Quantity = 1
		}
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	order.OwnerID = principal.ID
	order.PaymentMethod = models.PaymentMethodOnline
	order.Status = models.OrderStatusPaid
	order.Total = cartTotal(order.Items)
	order.CreatedAt = time.Now().UTC()

	if err := s.orders.commitOrder(ctx, principal, &order); err != nil {
		return nil, err
	}

	metrics.PaymentSimulated()
	metrics.OrderPlaced(string(order.PaymentMethod), string(order.Status))

	return &order, nil
}
