package update_bookings

import (
	"context"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateSingle(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
	UpdateBulkStatus(ctx context.Context, ids []string, status string) (*models.BulkUpdateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
