package list_bookings

import (
	"context"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListRecent(ctx context.Context, limit int) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
