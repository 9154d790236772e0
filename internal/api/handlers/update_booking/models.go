package update_booking

import "github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}
