package create_booking

import (
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

// CreateBookingRequest HTTP request model
// Форма бронирования присылает способ оплаты как paymentMode
type CreateBookingRequest struct {
	models.CreateBookingRequest
	PaymentMode *string `json:"paymentMode,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBookingRequest) ToServiceRequest() *models.CreateBookingRequest {
	req := r.CreateBookingRequest
	if req.PaymentPreference == nil && r.PaymentMode != nil {
		req.PaymentPreference = r.PaymentMode
	}
	return &req
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
