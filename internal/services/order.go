package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/metrics"
	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/kharidoapp/checkout-engine/internal/store"
)

// Notifier sends the order confirmation after a durable commit. Failures
// are reported but never affect the commit.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error
}

// OrderService converts a validated (cart, address, payment method) triple
// into an immutable order record and reads the history back. History is
// append-only: the engine never edits or deletes an order.
type OrderService struct {
	store    store.Store
	cart     *CartService
	checkout *CheckoutService
	notifier Notifier
}

func NewOrderService(st store.Store, cart *CartService, checkout *CheckoutService, notifier Notifier) *OrderService {
	return &OrderService{store: st, cart: cart, checkout: checkout, notifier: notifier}
}

// PlaceOrder commits the current cart against the confirmed checkout
// session. For cash on delivery the returned order is terminal and durably
// recorded, and the cart is cleared. For online payment the returned order
// is a pending_payment draft that is NOT yet recorded anywhere: the caller
// must carry it to the payment simulator, whose success is the only thing
// that records the order and clears the cart.
func (s *OrderService) PlaceOrder(ctx context.Context, principal models.Principal) (*models.Order, error) {

	session, err := s.checkout.Proceed(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errors.BadRequestError("Cannot place an order with an empty cart")
	}

	order := &models.Order{
		ID:            uuid.New(),
		OwnerID:       principal.ID,
		Items:         snapshotItems(items),
		Address:       session.Address,
		Total:         cartTotal(items),
		PaymentMethod: session.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	if session.PaymentMethod == models.PaymentMethodOnline {
		order.Status = models.OrderStatusPendingPayment

		return order, nil
	}

	order.Status = models.OrderStatusConfirmedCOD

	if err := s.commitOrder(ctx, principal, order); err != nil {
		return nil, err
	}

	metrics.OrderPlaced(string(order.PaymentMethod), string(order.Status))

	return order, nil
}

// ListOrders returns the caller's history, most recent first. Storage order
// is append order; display order is its exact reverse, no secondary key.
func (s *OrderService) ListOrders(ctx context.Context, principal models.Principal) ([]models.Order, error) {

	all, err := s.readOrders(ctx)
	if err != nil {
		return nil, err
	}

	owned := []models.Order{}

	for _, order := range all {
		if order.OwnerID == principal.ID {
			owned = append(owned, order)
		}
	}

	for i, j := 0, len(owned)-1; i < j; i, j = i+1, j-1 {
		owned[i], owned[j] = owned[j], owned[i]
	}

	return owned, nil
}

// Reorder puts a historical item snapshot back into the cart with the
// snapshot's own quantity. If the id is already in the cart the add is an
// idempotent no-op.
func (s *OrderService) Reorder(ctx context.Context, item models.CartItem) (*models.CartResponse, error) {
	return s.cart.AddSnapshot(ctx, item)
}

// commitOrder appends the order to the history slot and only then clears
// the cart. The two writes are not atomic across a crash boundary; the
// append goes first so a committed order is never silently lost.
func (s *OrderService) commitOrder(ctx context.Context, principal models.Principal, order *models.Order) error {

	all, err := s.readOrders(ctx)
	if err != nil {
		return err
	}

	all = append(all, *order)

	if err := s.store.Write(ctx, store.SlotOrders, all); err != nil {
		return errors.StorageError("Failed to record order").WithError(err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		return err
	}

	if err := s.checkout.Reset(ctx); err != nil {
		return err
	}

	if s.notifier != nil && principal.Email != "" {
		if err := s.notifier.SendOrderConfirmation(ctx, principal.Email, order); err != nil {
			slog.Warn("Order confirmation email failed",
				slog.String("orderId", order.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

func (s *OrderService) readOrders(ctx context.Context) ([]models.Order, error) {

	var all []models.Order

	found, err := s.store.Read(ctx, store.SlotOrders, &all)
	if err != nil {
		return nil, errors.StorageError("Failed to read order history").WithError(err)
	}

	if !found || all == nil {
		all = []models.Order{}
	}

	return all, nil
}

// snapshotItems deep-copies the cart lines so later cart mutation can never
// reach into a committed order.
func snapshotItems(items []models.CartItem) []models.CartItem {
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	return snapshot
}
