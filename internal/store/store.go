package store

import "context"

// Store is the persistent record store: named slots, each holding one
// serialized value. Read leaves dest untouched and returns found=false when
// the slot is missing or its contents cannot be decoded; absent data is
// never an error. Write replaces the whole slot value; there is no partial
// or merge write, and there is no transactionality across slots. A crash
// between two slot writes can leave them inconsistent, which callers accept.
type Store interface {
	Read(ctx context.Context, slot string, dest any) (bool, error)
	Write(ctx context.Context, slot string, value any) error
	Delete(ctx context.Context, slot string) error
	Close() error
}

const (
	SlotCart     = "cart"
	SlotSaved    = "saved_items"
	SlotOrders   = "orders"
	SlotCheckout = "checkout"
)

// SellerCatalogSlot names the per-principal uploaded catalog slot. External
// seller tooling writes it and the catalog display reads it; the engine only
// defines the name.
func SellerCatalogSlot(principalID string) string {
	return "products:" + principalID
}
