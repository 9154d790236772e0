package list_engineers

import (
	"context"

	"github.com/m04kA/AiroFix-BookingService/internal/service/engineers/models"
)

type EngineerService interface {
	List(ctx context.Context, includeInactive bool) (*models.EngineerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
