package domain

import (
	"strings"

	"github.com/m04kA/AiroFix-BookingService/pkg/phone"
	"github.com/m04kA/AiroFix-BookingService/pkg/types"
)

// BookingStatus represents the workflow status of a booking
// The set is open: unknown values are stored as given and compared case-insensitively
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusOngoing             BookingStatus = "ongoing"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByAdmin    BookingStatus = "cancelled_by_admin"
)

// Normalized returns the status in lower case without surrounding spaces
func (s BookingStatus) Normalized() BookingStatus {
	return BookingStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// IsCancelled returns true for any cancelled variant ("cancelled", "cancelled_by_*")
func (s BookingStatus) IsCancelled() bool {
	n := s.Normalized()
	return n == StatusCancelled || strings.HasPrefix(string(n), string(StatusCancelled)+"_")
}

// IsTerminal returns true if no further workflow edits are accepted
func (s BookingStatus) IsTerminal() bool {
	return s.Normalized() == StatusCompleted || s.IsCancelled()
}

// Equal compares two statuses case-insensitively
func (s BookingStatus) Equal(other BookingStatus) bool {
	return s.Normalized() == other.Normalized()
}

// PaymentStatus normalized payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
)

// ParsePaymentStatus принимает только известные значения (без учета регистра)
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusUnpaid:
		return s, true
	}
	return "", false
}

// PaymentPreference how the customer intends to pay
type PaymentPreference string

const (
	PaymentPreferenceOnline PaymentPreference = "online"
	PaymentPreferenceCOD    PaymentPreference = "cod"
)

// ParsePaymentPreference принимает значения формы подтверждения (online/cod)
// и формы бронирования (online_now/cash_later)
func ParsePaymentPreference(raw string) (PaymentPreference, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online", "online_now":
		return PaymentPreferenceOnline, true
	case "cod", "cash_later":
		return PaymentPreferenceCOD, true
	}
	return "", false
}

// Booking represents a customer's request for a home service visit
type Booking struct {
	ID string

	// Customer
	CustomerName string
	Phone        string // как ввел клиент; для поиска используется NormalizedPhone
	Email        *string

	// Service selection
	ServiceType  string
	CategoryName string
	ItemName     string
	ApproxPrice  string // строка для отображения, например "₹399 – ₹799"

	// Schedule
	Date        string
	Slot        string
	StartTs     *int64 // ms since epoch
	ScheduledAt *int64 // ms since epoch, старое название StartTs

	// Address
	AddressLine1 string
	AddressLine2 string
	City         string
	Pincode      string

	Notes  string
	Source string

	Status           BookingStatus
	AssignedEngineer *string // нормализованный телефон инженера, nil = не назначен

	// Payment
	PaymentGateway     *string
	PaymentOrderID     *string // link id шлюза
	PaymentLink        *string
	PaymentStatus      PaymentStatus
	PaymentPreference  *PaymentPreference
	PaymentLastStatus  *string // сырой статус последнего заказа у шлюза
	PaymentLastOrderID *string
	PaymentCheckedAt   *int64

	CreatedAt int64
	UpdatedAt int64

	CancelledAt        *int64
	CancelledBy        *string
	CancellationReason *string
}

// NormalizedPhone returns the last 10 digits of the customer phone
func (b *Booking) NormalizedPhone() string {
	return phone.Normalize(b.Phone)
}

// SlotStart returns the slot start time in ms, StartTs wins over ScheduledAt
// Нулевые и отрицательные значения считаются неизвестным временем
func (b *Booking) SlotStart() (int64, bool) {
	if b.StartTs != nil && *b.StartTs > 0 {
		return *b.StartTs, true
	}
	if b.ScheduledAt != nil && *b.ScheduledAt > 0 {
		return *b.ScheduledAt, true
	}
	return 0, false
}

// CanBeCancelled returns true if the booking is not in a terminal state
func (b *Booking) CanBeCancelled() bool {
	return !b.Status.IsTerminal()
}

// HasPaymentContext returns true if a payment link was created through Cashfree
func (b *Booking) HasPaymentContext() bool {
	return b.PaymentGateway != nil && *b.PaymentGateway == PaymentGatewayCashfree &&
		b.PaymentOrderID != nil && *b.PaymentOrderID != ""
}

// BookingPatch sparse update of a booking
// Поля без Set не изменяются
type BookingPatch struct {
	Status            types.Optional[BookingStatus]
	AssignedEngineer  types.Optional[*string] // nil или "" = снять назначение
	PaymentPreference types.Optional[PaymentPreference]
	PaymentStatus     types.Optional[PaymentStatus]

	CustomerName types.Optional[string]
	Phone        types.Optional[string]
	Email        types.Optional[*string]

	ServiceType  types.Optional[string]
	CategoryName types.Optional[string]
	ItemName     types.Optional[string]
	ApproxPrice  types.Optional[string]

	Date        types.Optional[string]
	Slot        types.Optional[string]
	StartTs     types.Optional[*int64]
	ScheduledAt types.Optional[*int64]

	AddressLine1 types.Optional[string]
	AddressLine2 types.Optional[string]
	City         types.Optional[string]
	Pincode      types.Optional[string]

	Notes types.Optional[string]
}

// IsEmpty returns true if the patch changes nothing
func (p *BookingPatch) IsEmpty() bool {
	return !p.Status.Set && !p.AssignedEngineer.Set && !p.PaymentPreference.Set && !p.PaymentStatus.Set &&
		!p.CustomerName.Set && !p.Phone.Set && !p.Email.Set &&
		!p.ServiceType.Set && !p.CategoryName.Set && !p.ItemName.Set && !p.ApproxPrice.Set &&
		!p.Date.Set && !p.Slot.Set && !p.StartTs.Set && !p.ScheduledAt.Set &&
		!p.AddressLine1.Set && !p.AddressLine2.Set && !p.City.Set && !p.Pincode.Set &&
		!p.Notes.Set
}

// Cancellation данные отмены бронирования клиентом
type Cancellation struct {
	Status      BookingStatus
	CancelledAt int64
	CancelledBy string
	Reason      *string
}

// PaymentLinkRecord результат создания платежной ссылки, сохраняемый в бронировании
type PaymentLinkRecord struct {
	Gateway string
	LinkID  string
	LinkURL string
	Status  PaymentStatus
}

// PaymentCheck результат сверки статуса оплаты со шлюзом
type PaymentCheck struct {
	Status      PaymentStatus
	LastStatus  string
	LastOrderID *string
	CheckedAt   int64
}

// PendingPaymentsFilter фильтр бронирований для фоновой сверки оплат
type PendingPaymentsFilter struct {
	CreatedAfter int64 // ms since epoch
	Limit        int
}
