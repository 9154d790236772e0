package verify_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	verifyPayment "github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgMissingBookingID   = "Missing bookingId."
	msgNotFound           = "Booking not found."
	msgNoPaymentContext   = "No Cashfree payment link found for this booking."
	msgGatewayFailed      = "Failed to verify payment with Cashfree."
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/verify
// Вызывается страницей подтверждения после возврата клиента со страницы оплаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest()

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/verify - Missing booking id")
			handlers.RespondBadRequest(w, msgMissingBookingID)

		case errors.Is(err, verifyPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/verify - Booking not found: booking_id=%s", useCaseReq.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verifyPayment.ErrMissingPaymentContext):
			h.logger.Warn("POST /payments/verify - No payment context: booking_id=%s", useCaseReq.BookingID)
			handlers.RespondBadRequest(w, msgNoPaymentContext)

		case errors.Is(err, verifyPayment.ErrGateway):
			h.logger.Warn("POST /payments/verify - Gateway error: booking_id=%s, error=%v", useCaseReq.BookingID, err)
			handlers.RespondGatewayError(w, err, msgGatewayFailed)

		default:
			h.logger.Error("POST /payments/verify - Failed to verify payment: booking_id=%s, error=%v",
				useCaseReq.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/verify - Payment verified: booking_id=%s, status=%s, cf_status=%s",
		useCaseReq.BookingID, result.PaymentStatus, result.CfStatus)
	handlers.RespondJSON(w, http.StatusOK, VerifyPaymentResponse{
		Success:       true,
		PaymentStatus: result.PaymentStatus,
		CfStatus:      result.CfStatus,
		OrderID:       result.OrderID,
	})
}
