package bookings

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTransition возвращается при попытке изменить бронирование в конечном статусе
	ErrInvalidTransition = errors.New("booking cannot be changed in its current status")

	// ErrTooCloseToSlot возвращается, когда до начала слота осталось меньше окна отмены
	ErrTooCloseToSlot = errors.New("too close to the slot to cancel")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// TooCloseToSlotError отказ в отмене с данными для клиента
type TooCloseToSlotError struct {
	SlotStart int64 // ms since epoch
	Now       int64 // ms since epoch
	Window    time.Duration
}

func (e *TooCloseToSlotError) Error() string {
	return fmt.Sprintf("%s: slot starts at %d, now %d, window %s",
		ErrTooCloseToSlot.Error(), e.SlotStart, e.Now, e.Window)
}

func (e *TooCloseToSlotError) Unwrap() error {
	return ErrTooCloseToSlot
}
