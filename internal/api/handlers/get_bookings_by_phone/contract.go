package get_bookings_by_phone

import (
	"context"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListByPhone(ctx context.Context, phone string) (*models.PhoneBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
