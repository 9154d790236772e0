package verify_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_payment: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("verify_payment: booking not found")

	// ErrMissingPaymentContext возвращается, если для бронирования не создавалась ссылка Cashfree
	ErrMissingPaymentContext = errors.New("verify_payment: booking has no cashfree payment link")

	// ErrGateway возвращается, когда шлюз отказал или недоступен
	ErrGateway = errors.New("verify_payment: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_payment: internal error")
)
