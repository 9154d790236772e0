package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgMissingFields      = "Please fill in your name, phone number and the service you need."
	msgInvalidDetails     = "Invalid booking details."
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingField):
			h.logger.Warn("POST /bookings - Required fields missing: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDetails)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s", id)
	handlers.RespondJSON(w, http.StatusCreated, CreateBookingResponse{
		Success: true,
		ID:      id,
	})
}
