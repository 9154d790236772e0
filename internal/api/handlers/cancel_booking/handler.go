package cancel_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgInvalidReason      = "Cancellation reason is too long."
	msgNotFound           = "Booking not found."
	msgCannotCancel       = "This booking can no longer be cancelled."
	msgTooCloseToSlot     = "Bookings can only be cancelled at least %d hours before the slot. Please call us to cancel."
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

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// Тело необязательно
	var req CancelBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		var tooClose *bookings.TooCloseToSlotError

		switch {
		case errors.As(err, &tooClose):
			h.logger.Warn("POST /bookings/{id}/cancel - Too close to slot: booking_id=%s, slot=%d, now=%d",
				bookingID, tooClose.SlotStart, tooClose.Now)
			handlers.RespondJSON(w, http.StatusBadRequest, TooCloseToSlotResponse{
				Success:     false,
				Error:       fmt.Sprintf(msgTooCloseToSlot, int(tooClose.Window.Hours())),
				Code:        CodeTooCloseToSlot,
				SlotStartTs: tooClose.SlotStart,
				Now:         tooClose.Now,
			})

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{
		Success:   true,
		BookingID: result.BookingID,
		NewStatus: result.NewStatus,
	})
}
