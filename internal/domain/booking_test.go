package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/AiroFix-BookingService/pkg/ptr"
	"github.com/m04kA/AiroFix-BookingService/pkg/types"
)

func TestBookingStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		terminal bool
	}{
		{"pending", false},
		{"Confirmed", false},
		{"ongoing", false},
		{"completed", true},
		{"COMPLETED", true},
		{"cancelled", true},
		{"cancelled_by_customer", true},
		{"Cancelled_By_Admin", true},
		{"cancelled_by_engineer", true},
		{"cancelledx", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestBookingStatus_Equal(t *testing.T) {
	assert.True(t, BookingStatus("Pending ").Equal(StatusPending))
	assert.False(t, StatusPending.Equal(StatusConfirmed))
}

func TestParsePaymentPreference(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentPreference
		ok   bool
	}{
		{"online", PaymentPreferenceOnline, true},
		{"online_now", PaymentPreferenceOnline, true},
		{"COD", PaymentPreferenceCOD, true},
		{"cash_later", PaymentPreferenceCOD, true},
		{"card", "", false},
	}

	for _, tt := range tests {
		got, ok := ParsePaymentPreference(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	s, ok := ParsePaymentStatus("PAID")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusPaid, s)

	_, ok = ParsePaymentStatus("refunded")
	assert.False(t, ok)
}

func TestBooking_SlotStart(t *testing.T) {
	b := &Booking{}
	_, ok := b.SlotStart()
	assert.False(t, ok)

	b.ScheduledAt = ptr.Ptr(int64(200))
	start, ok := b.SlotStart()
	assert.True(t, ok)
	assert.Equal(t, int64(200), start)

	b.StartTs = ptr.Ptr(int64(100))
	start, ok = b.SlotStart()
	assert.True(t, ok)
	assert.Equal(t, int64(100), start)
}

func TestBooking_SlotStart_ZeroIsUnknown(t *testing.T) {
	b := &Booking{StartTs: ptr.Ptr(int64(0))}
	_, ok := b.SlotStart()
	assert.False(t, ok)

	b.ScheduledAt = ptr.Ptr(int64(0))
	_, ok = b.SlotStart()
	assert.False(t, ok)

	b.ScheduledAt = ptr.Ptr(int64(200))
	start, ok := b.SlotStart()
	assert.True(t, ok)
	assert.Equal(t, int64(200), start)
}

func TestBooking_HasPaymentContext(t *testing.T) {
	b := &Booking{}
	assert.False(t, b.HasPaymentContext())

	b.PaymentGateway = ptr.Ptr(PaymentGatewayCashfree)
	assert.False(t, b.HasPaymentContext())

	b.PaymentOrderID = ptr.Ptr("AFIX_LINK_1_2")
	assert.True(t, b.HasPaymentContext())

	b.PaymentGateway = ptr.Ptr("razorpay")
	assert.False(t, b.HasPaymentContext())
}

func TestBooking_NormalizedPhone(t *testing.T) {
	b := &Booking{Phone: "+91 98765-43210"}
	assert.Equal(t, "9876543210", b.NormalizedPhone())
}

func TestBookingPatch_IsEmpty(t *testing.T) {
	p := &BookingPatch{}
	assert.True(t, p.IsEmpty())

	p.AssignedEngineer = types.Some[*string](nil)
	assert.False(t, p.IsEmpty())
}

func TestResolveActive(t *testing.T) {
	assert.True(t, ResolveActive(nil, nil))
	assert.False(t, ResolveActive(ptr.Ptr(false), ptr.Ptr(true)))
	assert.True(t, ResolveActive(nil, ptr.Ptr(true)))
	assert.False(t, ResolveActive(nil, ptr.Ptr(false)))
}
