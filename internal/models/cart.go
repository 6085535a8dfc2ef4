package models

// CartItem is a candidate purchase line for the current browser profile.
// While it lives in the cart slot it is mutable; once an order is committed
// a copy of it becomes part of the order snapshot and the cart entry is gone.
type CartItem struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type AddItemRequest struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" validate:"gte=0"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// AdjustQuantityRequest moves an item's quantity by Delta. The resulting
// quantity is clamped to a minimum of 1 on every mutation path.
type AdjustQuantityRequest struct {
	ID    string `json:"id" validate:"required"`
	Delta int    `json:"delta" validate:"required"`
}

type RemoveItemRequest struct {
	ID string `json:"id" validate:"required"`
}

type SaveForLaterRequest struct {
	ID string `json:"id" validate:"required"`
}

type CartResponse struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

type SavedItemsResponse struct {
	Items []CartItem `json:"items"`
}
