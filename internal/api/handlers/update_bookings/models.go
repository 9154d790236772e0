package update_bookings

import (
	"encoding/json"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

const (
	ModeBulkStatus   = "bulk-status"
	ModeSingleUpdate = "single-update"
)

// requestShape определяет форму запроса: наличие ключа ids означает массовое обновление
type requestShape struct {
	IDs json.RawMessage `json:"ids"`
}

// BulkStatusRequest {ids, status}
type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// SingleUpdateRequest {id, ...partial}
type SingleUpdateRequest struct {
	ID string `json:"id"`
	models.UpdateBookingRequest
}

// UpdateBookingsResponse HTTP response model
type UpdateBookingsResponse struct {
	Success bool                    `json:"success"`
	Mode    string                  `json:"mode"`
	Updated *int64                  `json:"updated,omitempty"`
	Booking *models.BookingResponse `json:"booking,omitempty"`
}
