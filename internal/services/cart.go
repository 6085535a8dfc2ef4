package service

import (
	"context"

	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/metrics"
	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/kharidoapp/checkout-engine/internal/store"
	"github.com/microcosm-cc/bluemonday"
)

// CartService owns the mutable list of candidate purchase items for the
// current browser profile. Every mutation rewrites the full cart slot; there
// is no separate dirty/flush step.
type CartService struct {
	store  store.Store
	policy *bluemonday.Policy
}

func NewCartService(st store.Store) *CartService {
	return &CartService{store: st, policy: bluemonday.StrictPolicy()}
}

// Items reads the current cart, treating a missing or malformed slot as an
// empty cart.
func (s *CartService) Items(ctx context.Context) ([]models.CartItem, error) {

	var items []models.CartItem

	found, err := s.store.Read(ctx, store.SlotCart, &items)
	if err != nil {
		return nil, errors.StorageError("Failed to read cart").WithError(err)
	}

	if !found || items == nil {
		items = []models.CartItem{}
	}

	return items, nil
}

func (s *CartService) GetCart(ctx context.Context) (*models.CartResponse, error) {

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	return &models.CartResponse{Items: items, Total: cartTotal(items)}, nil
}

// AddItem appends a product with quantity 1. Adding an id that is already
// in the cart is a no-op; the current cart is returned unchanged.
func (s *CartService) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.CartResponse, error) {

	item := models.CartItem{
		ID:          req.ID,
		Title:       req.Title,
		Image:       req.Image,
		Price:       req.Price,
		Quantity:    1,
		Type:        req.Type,
		Description: req.Description,
	}

	return s.AddSnapshot(ctx, item)
}

// AddSnapshot inserts an item keeping its own quantity (clamped to at least
// 1). Reorder uses this to restore a historical line with its original
// quantity. Duplicate ids are a no-op, same as AddItem.
func (s *CartService) AddSnapshot(ctx context.Context, item models.CartItem) (*models.CartResponse, error) {

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range items {
		if existing.ID == item.ID {
			return &models.CartResponse{Items: items, Total: cartTotal(items)}, nil
		}
	}

	item = s.sanitizeItem(item)

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items = append(items, item)

	if err := s.store.Write(ctx, store.SlotCart, items); err != nil {
		return nil, errors.StorageError("Failed to update cart").WithError(err)
	}

	metrics.CartMutation("add")

	return &models.CartResponse{Items: items, Total: cartTotal(items)}, nil
}

// AdjustQuantity moves the quantity of the matching item by delta, clamped
// to a minimum of 1. An unknown id is a no-op.
func (s *CartService) AdjustQuantity(ctx context.Context, req *models.AdjustQuantityRequest) (*models.CartResponse, error) {

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	changed := false

	for i := range items {
		if items[i].ID != req.ID {
			continue
		}

		quantity := items[i].Quantity + req.Delta
		if quantity < 1 {
			quantity = 1
		}

		changed = items[i].Quantity != quantity
		items[i].Quantity = quantity

		break
	}

	if changed {
		if err := s.store.Write(ctx, store.SlotCart, items); err != nil {
			return nil, errors.StorageError("Failed to update cart").WithError(err)
		}

		metrics.CartMutation("adjust_quantity")
	}

	return &models.CartResponse{Items: items, Total: cartTotal(items)}, nil
}

// Remove deletes the matching entry. An unknown id is a no-op.
func (s *CartService) Remove(ctx context.Context, id string) (*models.CartResponse, error) {

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0:0]

	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if len(kept) != len(items) {
		if kept == nil {
			kept = []models.CartItem{}
		}

		if err := s.store.Write(ctx, store.SlotCart, kept); err != nil {
			return nil, errors.StorageError("Failed to update cart").WithError(err)
		}

		metrics.CartMutation("remove")
		items = kept
	}

	return &models.CartResponse{Items: items, Total: cartTotal(items)}, nil
}

// SaveForLater moves an item out of the active cart into the saved-items
// slot. The two slot writes are not atomic across a crash boundary; the
// saved slot is written first so the item is never lost outright.
func (s *CartService) SaveForLater(ctx context.Context, id string) (*models.CartResponse, error) {

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	var moved *models.CartItem

	kept := items[:0:0]

	for _, item := range items {
		if item.ID == id {
			copied := item
			moved = &copied

			continue
		}

		kept = append(kept, item)
	}

	if moved == nil {
		return &models.CartResponse{Items: items, Total: cartTotal(items)}, nil
	}

	saved, err := s.ListSaved(ctx)
	if err != nil {
		return nil, err
	}

	saved = append(saved, *moved)

	if err := s.store.Write(ctx, store.SlotSaved, saved); err != nil {
		return nil, errors.StorageError("Failed to update saved items").WithError(err)
	}

	if kept == nil {
		kept = []models.CartItem{}
	}

	if err := s.store.Write(ctx, store.SlotCart, kept); err != nil {
		return nil, errors.StorageError("Failed to update cart").WithError(err)
	}

	metrics.CartMutation("save_for_later")

	return &models.CartResponse{Items: kept, Total: cartTotal(kept)}, nil
}

func (s *CartService) ListSaved(ctx context.Context) ([]models.CartItem, error) {

	var saved []models.CartItem

	found, err := s.store.Read(ctx, store.SlotSaved, &saved)
	if err != nil {
		return nil, errors.StorageError("Failed to read saved items").WithError(err)
	}

	if !found || saved == nil {
		saved = []models.CartItem{}
	}

	return saved, nil
}

// Clear empties the cart slot. The slot is written as an empty sequence,
// not deleted, so a subsequent read still sees a well-formed cart.
func (s *CartService) Clear(ctx context.Context) error {

	if err := s.store.Write(ctx, store.SlotCart, []models.CartItem{}); err != nil {
		return errors.StorageError("Failed to clear cart").WithError(err)
	}

	metrics.CartMutation("clear")

	return nil
}

func (s *CartService) sanitizeItem(item models.CartItem) models.CartItem {
	item.Title = s.policy.Sanitize(item.Title)
	item.Type = s.policy.Sanitize(item.Type)
	item.Description = s.policy.Sanitize(item.Description)

	return item
}

// cartTotal is derived on every read, never cached.
func cartTotal(items []models.CartItem) float64 {

	var total float64

	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}
