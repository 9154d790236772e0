package create_payment_link

import (
	"context"
	"time"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	SavePaymentLink(ctx context.Context, id string, link domain.PaymentLinkRecord, updatedAt int64) error
}

// GatewayClient интерфейс клиента платежных ссылок
type GatewayClient interface {
	Configured() bool
	CreateLink(ctx context.Context, req *cashfree.CreateLinkRequest) (*cashfree.Link, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
