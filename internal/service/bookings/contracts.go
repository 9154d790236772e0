package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error)
	ListByUserPhone(ctx context.Context, phone string) ([]*domain.Booking, error)
	ListByLegacyPhone(ctx context.Context, phone string) ([]*domain.Booking, error)
	Update(ctx context.Context, id string, patch domain.BookingPatch, updatedAt int64) error
	UpdateStatusBulk(ctx context.Context, ids []string, status domain.BookingStatus, updatedAt int64) (int64, error)
	MarkCancelled(ctx context.Context, id string, c domain.Cancellation) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator interface {
	NewID() (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator выдает UUIDv7: упорядочены по времени и никогда не переиспользуются
type UUIDGenerator struct{}

// NewID возвращает новый идентификатор
func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
