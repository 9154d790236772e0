package cashfree

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса и т.п.)
	ErrInternal = errors.New("cashfree client: internal error")

	// ErrUnavailable возвращается, когда Cashfree недоступен (сеть, таймаут, 5xx) после всех повторов
	ErrUnavailable = errors.New("cashfree client: gateway unavailable")

	// ErrRejected возвращается, когда Cashfree отклонил запрос (4xx)
	ErrRejected = errors.New("cashfree client: request rejected")

	// ErrInvalidResponse возвращается при некорректном ответе
	ErrInvalidResponse = errors.New("cashfree client: invalid response")
)

// APIError ответ Cashfree с неуспешным статусом
// Body содержит сырой ответ для диагностики
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cashfree: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap 5xx считается недоступностью шлюза, остальное отказом
func (e *APIError) Unwrap() error {
	if e.StatusCode >= 500 {
		return ErrUnavailable
	}
	return ErrRejected
}

// Retryable повторяем только ответы 5xx
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}
