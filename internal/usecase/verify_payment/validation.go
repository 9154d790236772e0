package verify_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	return nil
}

// resolveStatus сопоставляет статус заказа Cashfree со статусом оплаты бронирования
// Оплаченное бронирование остается оплаченным; неизвестные статусы не меняют текущий
func resolveStatus(current domain.PaymentStatus, orderStatus string) domain.PaymentStatus {
	if current == domain.PaymentStatusPaid {
		return current
	}

	switch strings.ToUpper(strings.TrimSpace(orderStatus)) {
	case "PAID":
		return domain.PaymentStatusPaid
	case "EXPIRED", "TERMINATED":
		return domain.PaymentStatusFailed
	default:
		return currentOrPending(current)
	}
}

func currentOrPending(current domain.PaymentStatus) domain.PaymentStatus {
	if current == "" {
		return domain.PaymentStatusPending
	}
	return current
}
