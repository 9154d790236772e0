package get_engineer

import (
	"context"

	"github.com/m04kA/AiroFix-BookingService/internal/service/engineers/models"
)

type EngineerService interface {
	GetByPhone(ctx context.Context, phone string) (*models.EngineerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
