package verify_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/AiroFix-BookingService/pkg/metrics"
	"github.com/m04kA/AiroFix-BookingService/pkg/ptr"
)

// UseCase use case для сверки статуса оплаты со шлюзом
// Повторные вызовы сходятся к одному и тому же результату
type UseCase struct {
	bookingRepo  BookingRepository
	gateway      GatewayClient
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// m может быть nil, если метрики отключены
func NewUseCase(
	bookingRepo BookingRepository,
	gateway GatewayClient,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
	}
}

// Execute запрашивает заказы по платежной ссылке бронирования и обновляет статус оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifyPayment: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyPayment: validation failed: %v", err)
		return nil, err
	}
	bookingID := strings.TrimSpace(req.BookingID)

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("VerifyPayment: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("VerifyPayment: failed to get booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Сверять можно только бронирования со ссылкой Cashfree
	if !booking.HasPaymentContext() {
		uc.logger.Warn("VerifyPayment: booking id=%s has no cashfree link", bookingID)
		return nil, ErrMissingPaymentContext
	}
	linkID := *booking.PaymentOrderID
	current := currentOrPending(booking.PaymentStatus)

	// 4. Запрашиваем заказы по ссылке
	orders, err := uc.gateway.GetLinkOrders(ctx, linkID)
	if err != nil {
		uc.logger.Error("VerifyPayment: gateway error for link_id=%s: %v", linkID, err)
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	// 5. Клиент еще не начинал оплату - ничего не меняем
	if len(orders) == 0 {
		uc.logger.Info("VerifyPayment: no orders yet for link_id=%s, status stays %s", linkID, current)
		uc.observe(current)
		return &Response{
			PaymentStatus: string(current),
			CfStatus:      NoOrdersStatus,
		}, nil
	}

	// 6. Решение принимается по последнему заказу
	latest := orders[0]
	cfStatus := strings.ToUpper(strings.TrimSpace(latest.OrderStatus))
	next := resolveStatus(current, cfStatus)

	var orderID *string
	if id := latest.ID(); id != "" {
		orderID = ptr.Ptr(id)
	}

	check := domain.PaymentCheck{
		Status:      next,
		LastStatus:  cfStatus,
		LastOrderID: orderID,
		CheckedAt:   uc.timeProvider.Now().UnixMilli(),
	}

	// 7. Сохраняем результат сверки
	if err := uc.bookingRepo.SavePaymentCheck(ctx, bookingID, check); err != nil {
		uc.logger.Error("VerifyPayment: failed to save check for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to save payment check: %v", ErrInternal, err)
	}

	uc.observe(next)

	if next != current {
		uc.logger.Info("VerifyPayment: booking id=%s payment %s -> %s (cashfree %s)", bookingID, current, next, cfStatus)
	} else {
		uc.logger.Info("VerifyPayment: booking id=%s payment stays %s (cashfree %s)", bookingID, current, cfStatus)
	}

	return &Response{
		PaymentStatus: string(next),
		CfStatus:      cfStatus,
		OrderID:       orderID,
		Changed:       next != current,
	}, nil
}

func (uc *UseCase) observe(status domain.PaymentStatus) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.PaymentVerificationsTotal.WithLabelValues(string(status)).Inc()
}
