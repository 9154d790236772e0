package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
)

const (
	msgInvalidLimit = "Invalid limit."
)

type Handler struct {
	service      BookingService
	defaultLimit int
	logger       Logger
}

// NewHandler defaultLimit используется, когда limit не передан
// Публичный список и админка отличаются только этим значением
func NewHandler(service BookingService, defaultLimit int, logger Logger) *Handler {
	return &Handler{
		service:      service,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Handle GET /api/v1/bookings?limit=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /bookings - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: limit=%d, error=%v", limit, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Listed %d bookings (limit=%d)", len(result.Bookings), limit)
	handlers.RespondJSON(w, http.StatusOK, ListBookingsResponse{
		Success:  true,
		Bookings: result.Bookings,
	})
}
