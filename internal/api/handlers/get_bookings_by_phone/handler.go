package get_bookings_by_phone

import (
	"errors"
	"net/http"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidPhone = "Please enter a valid 10-digit phone number."
)

// PhoneBookingsResponse HTTP response model
type PhoneBookingsResponse struct {
	Success  bool                     `json:"success"`
	Phone    string                   `json:"phone"`
	Bookings []models.BookingResponse `json:"bookings"`
}

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

// Handle GET /api/v1/bookings/by-phone?phone=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawPhone := r.URL.Query().Get("phone")

	result, err := h.service.ListByPhone(r.Context(), rawPhone)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/by-phone - Invalid phone: %q", rawPhone)
			handlers.RespondBadRequest(w, msgInvalidPhone)
			return
		}
		h.logger.Error("GET /bookings/by-phone - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/by-phone - Found %d bookings: phone=%s", len(result.Bookings), result.Phone)
	handlers.RespondJSON(w, http.StatusOK, PhoneBookingsResponse{
		Success:  true,
		Phone:    result.Phone,
		Bookings: result.Bookings,
	})
}
