package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kharidoapp/checkout-engine/internal/api/middleware"
	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/flow"
	"github.com/kharidoapp/checkout-engine/internal/models"
	service "github.com/kharidoapp/checkout-engine/internal/services"
	"github.com/kharidoapp/checkout-engine/internal/utils"
	"github.com/kharidoapp/checkout-engine/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	orderService    *service.OrderService
	cartService     *service.CartService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, orderService *service.OrderService, cartService *service.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		cartService:     cartService,
		validator:       validator.New(),
	}
}

// Session godoc
//	@Summary		Get the checkout session
//	@Description	Returns the address/payment selector state for the profile.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutSession
//	@Security		BearerAuth
//	@Router			/checkout [get]
func (h *CheckoutHandler) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		if !h.guardCart(w, r) {
			return
		}

		session, err := h.checkoutService.Session(r.Context())
		if err != nil {
			logger.Error("Failed to read checkout session", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}

func (h *CheckoutHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.UpdateAddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		session, err := h.checkoutService.UpdateAddress(r.Context(), &req)
		if err != nil {
			logger.Warn("Address update rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}

func (h *CheckoutHandler) ConfirmAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		session, err := h.checkoutService.ConfirmAddress(r.Context())
		if err != nil {
			logger.Warn("Address confirmation rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Address confirmed")
		response.Success(w, http.StatusOK, session)
	}
}

func (h *CheckoutHandler) EditAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		session, err := h.checkoutService.EditAddress(r.Context())
		if err != nil {
			logger.Error("Failed to unfreeze address", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}

// AutofillAddress fills the address from device coordinates. The lookup is
// best effort; on failure the session is untouched and the error is shown
// to the user.
func (h *CheckoutHandler) AutofillAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.AutofillAddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		session, err := h.checkoutService.AutofillAddress(r.Context(), &req)
		if err != nil {
			logger.Warn("Address autofill failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}

func (h *CheckoutHandler) SelectPaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requirePrincipal(w, r); !ok {
			return
		}

		var req models.SelectPaymentMethodRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		session, err := h.checkoutService.SelectPaymentMethod(r.Context(), req.Method)
		if err != nil {
			logger.Warn("Payment method selection rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session)
	}
}

// Proceed godoc
//	@Summary		Proceed from checkout
//	@Description	Commits the cart as a confirmed COD order, or returns a pending_payment draft for the online path. The draft must be carried to the payment simulation endpoint; it is not recorded yet.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	models.Order
//	@Failure		409	{object}	response.ErrorResponse	"Address not confirmed"
//	@Security		BearerAuth
//	@Router			/checkout/proceed [post]
func (h *CheckoutHandler) Proceed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		if !h.guardCart(w, r) {
			return
		}

		order, err := h.orderService.PlaceOrder(r.Context(), principal)
		if err != nil {
			logger.Warn("Order placement rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout proceeded",
			slog.String("orderId", order.ID.String()),
			slog.String("status", string(order.Status)))
		response.Success(w, http.StatusCreated, order)
	}
}

// guardCart blocks checkout flows when the cart is empty, the explicit
// replacement for the storefront's redirect-if-no-cart mount effect.
func (h *CheckoutHandler) guardCart(w http.ResponseWriter, r *http.Request) bool {

	items, err := h.cartService.Items(r.Context())
	if err != nil {
		response.Error(w, err)
		return false
	}

	if guard := flow.RequireNonEmptyCart(items); !guard.Proceed() {
		response.Error(w, errors.ConflictError("Cart is empty").WithDetail(string(guard.Redirect)))
		return false
	}

	return true
}
