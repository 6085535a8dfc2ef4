package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kharidoapp/checkout-engine/internal/api/middleware"
	"github.com/kharidoapp/checkout-engine/internal/models"
	service "github.com/kharidoapp/checkout-engine/internal/services"
	"github.com/kharidoapp/checkout-engine/internal/utils"
	"github.com/kharidoapp/checkout-engine/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the cart items and the derived total for the profile.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context())
		if err != nil {
			logger.Error("Failed to read cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Appends the product with quantity 1. Adding an id already in the cart is a no-op.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product to add"
//	@Success		200		{object}	models.CartResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.String("itemId", req.ID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AdjustQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.AdjustQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AdjustQuantity(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to adjust quantity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		itemID := r.PathValue("id")
		if itemID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Item ID is required")
			return
		}

		cart, err := h.cartService.Remove(r.Context(), itemID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// SaveForLater moves an item from the cart into the saved-items slot.
func (h *CartHandler) SaveForLater() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.SaveForLaterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.SaveForLater(r.Context(), req.ID)
		if err != nil {
			logger.Error("Failed to save item for later", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item saved for later", slog.String("itemId", req.ID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ListSaved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		saved, err := h.cartService.ListSaved(r.Context())
		if err != nil {
			logger.Error("Failed to read saved items", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.SavedItemsResponse{Items: saved})
	}
}
