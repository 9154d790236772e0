package engineers

import "errors"

var (
	// ErrEngineerNotFound возвращается, когда инженер не найден
	ErrEngineerNotFound = errors.New("engineer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
