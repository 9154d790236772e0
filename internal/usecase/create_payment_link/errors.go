package create_payment_link

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment_link: invalid input data")

	// ErrGatewayNotConfigured возвращается, когда не заданы ключи Cashfree
	ErrGatewayNotConfigured = errors.New("create_payment_link: payment gateway is not configured")

	// ErrGateway возвращается, когда шлюз отказал или не вернул ссылку
	// Исходная ошибка клиента (cashfree.APIError) доступна через errors.As
	ErrGateway = errors.New("create_payment_link: payment gateway error")
)
