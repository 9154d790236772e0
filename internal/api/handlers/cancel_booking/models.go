package cancel_booking

import (
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

// CodeTooCloseToSlot код ошибки для клиента, чтобы показать номер поддержки вместо кнопки отмены
const CodeTooCloseToSlot = "TOO_CLOSE_TO_SLOT"

// CancelBookingRequest HTTP request model
// Причина приходит под разными ключами из разных версий формы
type CancelBookingRequest struct {
	Reason             *string `json:"reason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	Note               *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	for _, candidate := range []*string{r.Reason, r.CancellationReason, r.Note} {
		if candidate != nil && strings.TrimSpace(*candidate) != "" {
			return &models.CancelBookingRequest{Reason: candidate}
		}
	}
	return &models.CancelBookingRequest{}
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	NewStatus string `json:"newStatus"`
}

// TooCloseToSlotResponse ответ на отмену внутри окна
type TooCloseToSlotResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	Code        string `json:"code"`
	SlotStartTs int64  `json:"slotStartTs"`
	Now         int64  `json:"now"`
}
