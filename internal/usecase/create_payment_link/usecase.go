package create_payment_link

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
)

// UseCase use case для создания платежной ссылки Cashfree
type UseCase struct {
	bookingRepo  BookingRepository
	gateway      GatewayClient
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	gateway GatewayClient,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute создает новую ссылку на оплату бронирования
// Каждый вызов создает новую ссылку; ссылка сохраняется в бронировании по возможности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentLink: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePaymentLink: validation failed: %v", err)
		return nil, err
	}
	bookingID := strings.TrimSpace(req.BookingID)

	if !uc.gateway.Configured() {
		uc.logger.Error("CreatePaymentLink: cashfree credentials are not configured")
		return nil, ErrGatewayNotConfigured
	}

	// 2. Загружаем бронирование; его отсутствие не мешает создать ссылку
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreatePaymentLink: booking id=%s not found, using request data only", bookingID)
		} else {
			uc.logger.Warn("CreatePaymentLink: failed to load booking id=%s, using request data only: %v", bookingID, err)
		}
		booking = nil
	}

	// 3. Собираем данные клиента и сумму
	now := uc.timeProvider.Now().UnixMilli()
	linkReq := uc.buildRequest(bookingID, req, booking, now)

	uc.logger.Info("CreatePaymentLink: requesting link_id=%s, amount=%.2f %s",
		linkReq.LinkID, linkReq.LinkAmount, linkReq.LinkCurrency)

	// 4. Создаем ссылку в Cashfree
	link, err := uc.gateway.CreateLink(ctx, linkReq)
	if err != nil {
		uc.logger.Error("CreatePaymentLink: gateway error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	// 5. Сохраняем ссылку в бронировании; ошибка не отменяет созданную ссылку
	record := domain.PaymentLinkRecord{
		Gateway: domain.PaymentGatewayCashfree,
		LinkID:  link.LinkID,
		LinkURL: link.LinkURL,
		Status:  domain.PaymentStatusPending,
	}
	if err := uc.bookingRepo.SavePaymentLink(ctx, bookingID, record, now); err != nil {
		uc.logger.Warn("CreatePaymentLink: failed to save link_id=%s on booking id=%s: %v", link.LinkID, bookingID, err)
	}

	uc.logger.Info("CreatePaymentLink: created link_id=%s for booking id=%s", link.LinkID, bookingID)

	return &Response{
		PaymentLink: link.LinkURL,
		LinkID:      link.LinkID,
	}, nil
}

func (uc *UseCase) buildRequest(bookingID string, req *Request, booking *domain.Booking, nowMs int64) *cashfree.CreateLinkRequest {
	var (
		bookingName  string
		bookingEmail string
		approxPrice  string
	)
	if booking != nil {
		bookingName = booking.CustomerName
		if booking.Email != nil {
			bookingEmail = *booking.Email
		}
		approxPrice = booking.ApproxPrice
	}

	name := firstNonEmpty(deref(req.CustomerName), bookingName, uc.cfg.PlaceholderName)
	email := firstNonEmpty(deref(req.Email), bookingEmail, uc.cfg.PlaceholderEmail)
	rawPhone := firstNonEmpty(deref(req.Phone), bookingPhone(booking))

	return &cashfree.CreateLinkRequest{
		LinkID:       buildLinkID(uc.cfg.LinkPrefix, bookingID, nowMs),
		LinkAmount:   resolveAmount(req.Amount, approxPrice),
		LinkCurrency: uc.cfg.Currency,
		LinkPurpose:  uc.cfg.PurposePrefix + " " + bookingID,
		CustomerDetails: cashfree.CustomerDetails{
			CustomerName:  name,
			CustomerPhone: gatewayPhone(rawPhone, uc.cfg.PlaceholderPhone),
			CustomerEmail: email,
		},
		LinkMeta: cashfree.LinkMeta{
			ReturnURL: buildReturnURL(uc.cfg.SiteURL, bookingID),
		},
		LinkAutoReminders: false,
		LinkNotify: cashfree.LinkNotify{
			SendSMS:   false,
			SendEmail: false,
		},
		LinkNotes: map[string]string{
			"bookingId": bookingID,
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
