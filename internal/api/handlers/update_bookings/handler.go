package update_bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgInvalidBulk        = "Provide booking ids and a status."
	msgMissingID          = "Missing booking id for update."
	msgNoFields           = "No fields to update."
	msgInvalidUpdate      = "Invalid booking update."
	msgNotFound           = "Booking not found."
	msgInvalidTransition  = "This booking can no longer be changed."
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

// Handle PUT /api/v1/bookings
// {ids, status} - массовая смена статуса, {id, ...поля} - правка одной брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var shape requestShape
	if err := json.Unmarshal(body, &shape); err != nil {
		h.logger.Warn("PUT /bookings - Request body is not an object: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if shape.IDs != nil {
		h.handleBulk(w, r, body)
		return
	}
	h.handleSingle(w, r, body)
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	var req BulkStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("PUT /bookings - Invalid bulk request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBulk)
		return
	}

	result, err := h.service.UpdateBulkStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("PUT /bookings - Invalid bulk update: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBulk)
			return
		}
		h.logger.Error("PUT /bookings - Failed to update statuses: count=%d, error=%v", len(req.IDs), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /bookings - Bulk status updated: status=%s, requested=%d, updated=%d",
		req.Status, result.Requested, result.Updated)
	handlers.RespondJSON(w, http.StatusOK, UpdateBookingsResponse{
		Success: true,
		Mode:    ModeBulkStatus,
		Updated: &result.Updated,
	})
}

func (h *Handler) handleSingle(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	var req SingleUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("PUT /bookings - Invalid single update request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	bookingID := strings.TrimSpace(req.ID)
	if bookingID == "" {
		h.logger.Warn("PUT /bookings - Missing booking id")
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	if req.UpdateBookingRequest.IsEmpty() {
		h.logger.Warn("PUT /bookings - No fields to update: booking_id=%s", bookingID)
		handlers.RespondBadRequest(w, msgNoFields)
		return
	}

	booking, err := h.service.UpdateSingle(r.Context(), bookingID, &req.UpdateBookingRequest)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings - Invalid transition: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /bookings - Invalid update: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidUpdate)

		default:
			h.logger.Error("PUT /bookings - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings - Booking updated successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, UpdateBookingsResponse{
		Success: true,
		Mode:    ModeSingleUpdate,
		Booking: booking,
	})
}
