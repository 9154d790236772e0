package domain

import "time"

// Правила отмены
const (
	// DefaultCancelWindow минимальный запас времени до начала слота для самостоятельной отмены
	DefaultCancelWindow = 12 * time.Hour

	// CancelledByCustomer инициатор отмены через клиентский сценарий
	CancelledByCustomer = "customer"
)

// Платежный шлюз
const (
	PaymentGatewayCashfree = "cashfree"
)

// Ограничения на входные данные
const (
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	DefaultSource               = "web"
)

// CancelledStatuses все варианты отмены, известные системе
// Статусы вида "cancelled_*" из старых данных тоже считаются отменой (см. BookingStatus.IsCancelled)
var CancelledStatuses = []BookingStatus{
	StatusCancelled,
	StatusCancelledByCustomer,
	StatusCancelledByAdmin,
}

// TerminalStatuses статусы, после которых рабочий процесс бронирования завершен
var TerminalStatuses = append([]BookingStatus{StatusCompleted}, CancelledStatuses...)
