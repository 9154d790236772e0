package engineers

import (
	"context"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
)

// EngineerRepository интерфейс репозитория инженеров
type EngineerRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.Engineer, error)
	GetByPhone(ctx context.Context, normalizedPhone string) (*domain.Engineer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
