package reconcile

import (
	"context"
	"time"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListPendingPayments(ctx context.Context, filter domain.PendingPaymentsFilter) ([]*domain.Booking, error)
}

// PaymentVerifier сверка оплаты одного бронирования
type PaymentVerifier interface {
	Execute(ctx context.Context, req *verify_payment.Request) (*verify_payment.Response, error)
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
