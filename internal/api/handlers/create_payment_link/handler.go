package create_payment_link

import (
	"errors"
	"net/http"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	createPaymentLink "github.com/m04kA/AiroFix-BookingService/internal/usecase/create_payment_link"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgMissingBookingID   = "Missing bookingId."
	msgInvalidAmount      = "Invalid amount."
	msgNotConfigured      = "Cashfree credentials missing on server."
	msgGatewayFailed      = "Failed to create Cashfree payment link."
)

type Handler struct {
	useCase CreatePaymentLinkUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentLinkUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/create-link
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/create-link - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /payments/create-link - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPaymentLink.ErrInvalidInput):
			h.logger.Warn("POST /payments/create-link - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingBookingID)

		case errors.Is(err, createPaymentLink.ErrGatewayNotConfigured):
			h.logger.Error("POST /payments/create-link - Gateway not configured")
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		case errors.Is(err, createPaymentLink.ErrGateway):
			h.logger.Warn("POST /payments/create-link - Gateway error: booking_id=%s, error=%v", useCaseReq.BookingID, err)
			handlers.RespondGatewayError(w, err, msgGatewayFailed)

		default:
			h.logger.Error("POST /payments/create-link - Failed to create link: booking_id=%s, error=%v",
				useCaseReq.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/create-link - Link created successfully: booking_id=%s, link_id=%s",
		useCaseReq.BookingID, result.LinkID)
	handlers.RespondJSON(w, http.StatusOK, CreatePaymentLinkResponse{
		Success:     true,
		PaymentLink: result.PaymentLink,
		LinkID:      result.LinkID,
	})
}
