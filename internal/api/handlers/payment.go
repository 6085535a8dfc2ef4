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

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// SimulateCapture godoc
//	@Summary		Simulate an online payment capture
//	@Description	Takes the pending_payment draft returned by checkout proceed, records it as a paid order and clears the cart. Always succeeds; there is no declined-payment path.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			draft	body		models.CaptureDraftRequest	true	"Pending draft from checkout"
//	@Success		201		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Draft has no items"
//	@Security		BearerAuth
//	@Router			/payments/simulate [post]
func (h *PaymentHandler) SimulateCapture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		var req models.CaptureDraftRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.paymentService.CaptureDraft(r.Context(), principal, req.Draft)
		if err != nil {
			logger.Warn("Payment capture rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment captured", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}
