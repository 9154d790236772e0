package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/pkg/ptr"
	"github.com/m04kA/AiroFix-BookingService/pkg/types"
)

var (
	// ErrInvalidField возвращается при некорректном значении поля запроса
	ErrInvalidField = errors.New("invalid field value")

	// ErrMissingField возвращается, когда не заполнено обязательное поле формы
	ErrMissingField = errors.New("required field missing")
)

// Request модели

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email,omitempty"`

	ServiceType  string `json:"serviceType"`
	CategoryName string `json:"categoryName"`
	ItemName     string `json:"itemName"`
	ApproxPrice  string `json:"approxPrice"`

	Date        string `json:"date"`
	Slot        string `json:"slot"`
	StartTs     *int64 `json:"startTs,omitempty"`
	ScheduledAt *int64 `json:"scheduledAt,omitempty"`

	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	Pincode      string `json:"pincode"`

	Notes             string  `json:"notes"`
	Source            string  `json:"source"`
	PaymentPreference *string `json:"paymentPreference,omitempty"`
}

// Validate проверяет обязательные поля
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrMissingField)
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrMissingField)
	}
	if strings.TrimSpace(r.ServiceType) == "" &&
		strings.TrimSpace(r.CategoryName) == "" &&
		strings.TrimSpace(r.ItemName) == "" {
		return fmt.Errorf("%w: service selection is required", ErrMissingField)
	}
	if len(r.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidField, domain.MaxNotesLength)
	}
	return nil
}

// ToDomainBooking собирает новое бронирование без id и временных меток
// Поля клиента, услуги, времени и адреса сохраняются как пришли; нормализуется только user_phone
func (r *CreateBookingRequest) ToDomainBooking() (*domain.Booking, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CustomerName:  r.CustomerName,
		Phone:         r.Phone,
		Email:         emptyToNil(r.Email),
		ServiceType:   r.ServiceType,
		CategoryName:  r.CategoryName,
		ItemName:      r.ItemName,
		ApproxPrice:   r.ApproxPrice,
		Date:          r.Date,
		Slot:          r.Slot,
		StartTs:       r.StartTs,
		ScheduledAt:   r.ScheduledAt,
		AddressLine1:  r.AddressLine1,
		AddressLine2:  r.AddressLine2,
		City:          r.City,
		Pincode:       r.Pincode,
		Notes:         r.Notes,
		Source:        r.Source,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}

	if strings.TrimSpace(booking.Source) == "" {
		booking.Source = domain.DefaultSource
	}

	if r.PaymentPreference != nil && strings.TrimSpace(*r.PaymentPreference) != "" {
		pref, ok := domain.ParsePaymentPreference(*r.PaymentPreference)
		if !ok {
			return nil, fmt.Errorf("%w: unknown paymentPreference %q", ErrInvalidField, *r.PaymentPreference)
		}
		booking.PaymentPreference = &pref
	}

	return booking, nil
}

// UpdateBookingRequest частичное обновление бронирования
// Передаются только изменяемые ключи; null для assignedEngineer снимает назначение
type UpdateBookingRequest struct {
	Status            types.Optional[string]  `json:"status"`
	AssignedEngineer  types.Optional[*string] `json:"assignedEngineer"`
	PaymentPreference types.Optional[string]  `json:"paymentPreference"`
	PaymentStatus     types.Optional[string]  `json:"paymentStatus"`

	CustomerName types.Optional[string]  `json:"customerName"`
	Phone        types.Optional[string]  `json:"phone"`
	Email        types.Optional[*string] `json:"email"`

	ServiceType  types.Optional[string] `json:"serviceType"`
	CategoryName types.Optional[string] `json:"categoryName"`
	ItemName     types.Optional[string] `json:"itemName"`
	ApproxPrice  types.Optional[string] `json:"approxPrice"`

	Date        types.Optional[string] `json:"date"`
	Slot        types.Optional[string] `json:"slot"`
	StartTs     types.Optional[*int64] `json:"startTs"`
	ScheduledAt types.Optional[*int64] `json:"scheduledAt"`

	AddressLine1 types.Optional[string] `json:"addressLine1"`
	AddressLine2 types.Optional[string] `json:"addressLine2"`
	City         types.Optional[string] `json:"city"`
	Pincode      types.Optional[string] `json:"pincode"`

	Notes types.Optional[string] `json:"notes"`
}

// IsEmpty сообщает, что в запросе нет ни одного ключа для изменения
func (r *UpdateBookingRequest) IsEmpty() bool {
	return !r.Status.Set && !r.AssignedEngineer.Set && !r.PaymentPreference.Set && !r.PaymentStatus.Set &&
		!r.CustomerName.Set && !r.Phone.Set && !r.Email.Set &&
		!r.ServiceType.Set && !r.CategoryName.Set && !r.ItemName.Set && !r.ApproxPrice.Set &&
		!r.Date.Set && !r.Slot.Set && !r.StartTs.Set && !r.ScheduledAt.Set &&
		!r.AddressLine1.Set && !r.AddressLine2.Set && !r.City.Set && !r.Pincode.Set &&
		!r.Notes.Set
}

// ToDomainPatch конвертирует запрос в domain патч с проверкой значений
func (r *UpdateBookingRequest) ToDomainPatch() (domain.BookingPatch, error) {
	var patch domain.BookingPatch

	if v, ok := r.Status.Get(); ok {
		status := strings.TrimSpace(v)
		if status == "" {
			return patch, fmt.Errorf("%w: status must not be empty", ErrInvalidField)
		}
		patch.Status = types.Some(domain.BookingStatus(status))
	}

	if v, ok := r.AssignedEngineer.Get(); ok {
		// пустая строка и null означают снятие назначения
		if v == nil || *v == "" {
			patch.AssignedEngineer = types.Some[*string](nil)
		} else {
			patch.AssignedEngineer = types.Some(v)
		}
	}

	if v, ok := r.PaymentPreference.Get(); ok {
		pref, valid := domain.ParsePaymentPreference(v)
		if !valid {
			return patch, fmt.Errorf("%w: unknown paymentPreference %q", ErrInvalidField, v)
		}
		patch.PaymentPreference = types.Some(pref)
	}

	if v, ok := r.PaymentStatus.Get(); ok {
		status, valid := domain.ParsePaymentStatus(v)
		if !valid {
			return patch, fmt.Errorf("%w: unknown paymentStatus %q", ErrInvalidField, v)
		}
		patch.PaymentStatus = types.Some(status)
	}

	if v, ok := r.CustomerName.Get(); ok {
		if strings.TrimSpace(v) == "" {
			return patch, fmt.Errorf("%w: customerName must not be empty", ErrInvalidField)
		}
		patch.CustomerName = types.Some(v)
	}

	if v, ok := r.Phone.Get(); ok {
		if strings.TrimSpace(v) == "" {
			return patch, fmt.Errorf("%w: phone must not be empty", ErrInvalidField)
		}
		patch.Phone = types.Some(v)
	}

	if v, ok := r.Email.Get(); ok {
		patch.Email = types.Some(emptyToNil(v))
	}

	if v, ok := r.Notes.Get(); ok {
		if len(v) > domain.MaxNotesLength {
			return patch, fmt.Errorf("%w: notes longer than %d characters", ErrInvalidField, domain.MaxNotesLength)
		}
		patch.Notes = types.Some(v)
	}

	patch.ServiceType = r.ServiceType
	patch.CategoryName = r.CategoryName
	patch.ItemName = r.ItemName
	patch.ApproxPrice = r.ApproxPrice
	patch.Date = r.Date
	patch.Slot = r.Slot
	patch.StartTs = r.StartTs
	patch.ScheduledAt = r.ScheduledAt
	patch.AddressLine1 = r.AddressLine1
	patch.AddressLine2 = r.AddressLine2
	patch.City = r.City
	patch.Pincode = r.Pincode

	return patch, nil
}

// CancelBookingRequest запрос на отмену бронирования клиентом
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID string `json:"id"`

	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email,omitempty"`

	ServiceType  string `json:"serviceType"`
	CategoryName string `json:"categoryName"`
	ItemName     string `json:"itemName"`
	ApproxPrice  string `json:"approxPrice"`

	Date        string `json:"date"`
	Slot        string `json:"slot"`
	StartTs     *int64 `json:"startTs,omitempty"`
	ScheduledAt *int64 `json:"scheduledAt,omitempty"`

	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	Pincode      string `json:"pincode"`

	Notes  string `json:"notes"`
	Source string `json:"source"`

	Status           string  `json:"status"`
	AssignedEngineer *string `json:"assignedEngineer"`

	PaymentGateway     *string `json:"paymentGateway,omitempty"`
	PaymentOrderID     *string `json:"paymentOrderId,omitempty"`
	PaymentLink        *string `json:"paymentLink,omitempty"`
	PaymentStatus      string  `json:"paymentStatus"`
	PaymentPreference  *string `json:"paymentPreference,omitempty"`
	PaymentLastStatus  *string `json:"paymentLastStatus,omitempty"`
	PaymentLastOrderID *string `json:"paymentLastOrderId,omitempty"`
	PaymentCheckedAt   *int64  `json:"paymentCheckedAt,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	CancelledAt        *int64  `json:"cancelledAt,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PhoneBookingsResponse бронирования клиента по телефону
type PhoneBookingsResponse struct {
	Phone    string            `json:"phone"` // нормализованный
	Bookings []BookingResponse `json:"bookings"`
}

// CancelBookingResponse результат отмены
type CancelBookingResponse struct {
	BookingID string `json:"bookingId"`
	NewStatus string `json:"newStatus"`
}

// BulkUpdateResponse результат массового обновления статуса
type BulkUpdateResponse struct {
	Requested int   `json:"requested"`
	Updated   int64 `json:"updated"`
}

// Конвертеры

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerName:       b.CustomerName,
		Phone:              b.Phone,
		Email:              b.Email,
		ServiceType:        b.ServiceType,
		CategoryName:       b.CategoryName,
		ItemName:           b.ItemName,
		ApproxPrice:        b.ApproxPrice,
		Date:               b.Date,
		Slot:               b.Slot,
		StartTs:            b.StartTs,
		ScheduledAt:        b.ScheduledAt,
		AddressLine1:       b.AddressLine1,
		AddressLine2:       b.AddressLine2,
		City:               b.City,
		Pincode:            b.Pincode,
		Notes:              b.Notes,
		Source:             b.Source,
		Status:             string(b.Status),
		AssignedEngineer:   b.AssignedEngineer,
		PaymentGateway:     b.PaymentGateway,
		PaymentOrderID:     b.PaymentOrderID,
		PaymentLink:        b.PaymentLink,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentLastStatus:  b.PaymentLastStatus,
		PaymentLastOrderID: b.PaymentLastOrderID,
		PaymentCheckedAt:   b.PaymentCheckedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
	}

	if b.PaymentPreference != nil {
		resp.PaymentPreference = ptr.Ptr(string(*b.PaymentPreference))
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return result
}

// emptyToNil пустой email хранится как NULL, непустой как есть
func emptyToNil(s *string) *string {
	if strings.TrimSpace(ptr.Value(s)) == "" {
		return nil
	}
	return ptr.Ptr(*s)
}
