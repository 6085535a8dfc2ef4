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

type OrderHandler struct {
	orderService *service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// ListOrders godoc
//	@Summary		List the caller's orders
//	@Description	Returns the order history for the authenticated principal, most recent first. Orders of other principals sharing the profile are never returned.
//	@Tags			Orders
//	@Produce		json
//	@Success		200	{object}	models.OrderListResponse
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), principal)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.OrderListResponse{Orders: orders, Total: len(orders)})
	}
}

// Reorder puts a historical line item back into the cart, keeping the
// snapshot's quantity.
func (h *OrderHandler) Reorder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.ReorderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.orderService.Reorder(r.Context(), req.Item)
		if err != nil {
			logger.Error("Failed to reorder item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item reordered", slog.String("itemId", req.Item.ID))
		response.Success(w, http.StatusOK, cart)
	}
}
