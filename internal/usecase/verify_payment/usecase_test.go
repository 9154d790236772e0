package verify_payment

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
	"github.com/m04kA/AiroFix-BookingService/pkg/metrics"
	"github.com/m04kA/AiroFix-BookingService/pkg/ptr"
)

var testNow = time.UnixMilli(1717236000000)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return testNow }

type fakeRepo struct {
	bookings map[string]*domain.Booking
	saveErr  error
	checks   []domain.PaymentCheck
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) SavePaymentCheck(_ context.Context, id string, check domain.PaymentCheck) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.checks = append(r.checks, check)
	b := r.bookings[id]
	b.PaymentStatus = check.Status
	b.PaymentLastStatus = &check.LastStatus
	b.PaymentLastOrderID = check.LastOrderID
	b.PaymentCheckedAt = &check.CheckedAt
	return nil
}

type fakeGateway struct {
	orders []cashfree.LinkOrder
	err    error
	linkID string
}

func (g *fakeGateway) GetLinkOrders(_ context.Context, linkID string) ([]cashfree.LinkOrder, error) {
	g.linkID = linkID
	return g.orders, g.err
}

func linkedBooking(status domain.PaymentStatus) *domain.Booking {
	return &domain.Booking{
		ID:             "b1",
		Status:         domain.StatusConfirmed,
		PaymentGateway: ptr.Ptr("cashfree"),
		PaymentOrderID: ptr.Ptr("AFIX_LINK_b1_1"),
		PaymentStatus:  status,
	}
}

func newTestUseCase(repo *fakeRepo, gw *fakeGateway, m *metrics.Metrics) *UseCase {
	uc := NewUseCase(repo, gw, m, logger.NewNop())
	uc.timeProvider = fixedTime{}
	return uc
}

func TestUseCase_Execute_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		current     domain.PaymentStatus
		orderStatus string
		want        string
		changed     bool
	}{
		{name: "paid", current: domain.PaymentStatusPending, orderStatus: "PAID", want: "paid", changed: true},
		{name: "lower case paid", current: domain.PaymentStatusPending, orderStatus: "paid", want: "paid", changed: true},
		{name: "expired", current: domain.PaymentStatusPending, orderStatus: "EXPIRED", want: "failed", changed: true},
		{name: "terminated", current: domain.PaymentStatusPending, orderStatus: "TERMINATED", want: "failed", changed: true},
		{name: "active keeps current", current: domain.PaymentStatusPending, orderStatus: "ACTIVE", want: "pending"},
		{name: "unknown keeps failed", current: domain.PaymentStatusFailed, orderStatus: "USER_DROPPED", want: "failed"},
		{name: "paid is sticky", current: domain.PaymentStatusPaid, orderStatus: "EXPIRED", want: "paid"},
		{name: "failed can become paid", current: domain.PaymentStatusFailed, orderStatus: "PAID", want: "paid", changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": linkedBooking(tt.current)}}
			gw := &fakeGateway{orders: []cashfree.LinkOrder{
				{OrderID: "order_2", OrderStatus: tt.orderStatus},
				{OrderID: "order_1", OrderStatus: "EXPIRED"},
			}}

			resp, err := newTestUseCase(repo, gw, nil).Execute(context.Background(), &Request{BookingID: "b1"})
			require.NoError(t, err)

			assert.Equal(t, "AFIX_LINK_b1_1", gw.linkID)
			assert.Equal(t, tt.want, resp.PaymentStatus)
			assert.Equal(t, tt.changed, resp.Changed)

			require.Len(t, repo.checks, 1)
			check := repo.checks[0]
			assert.Equal(t, domain.PaymentStatus(tt.want), check.Status)
			assert.Equal(t, resp.CfStatus, check.LastStatus)
			require.NotNil(t, check.LastOrderID)
			assert.Equal(t, "order_2", *check.LastOrderID)
			assert.Equal(t, testNow.UnixMilli(), check.CheckedAt)
		})
	}
}

func TestUseCase_Execute_NoOrders(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": linkedBooking("")}}

	resp, err := newTestUseCase(repo, &fakeGateway{}, nil).Execute(context.Background(), &Request{BookingID: "b1"})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, NoOrdersStatus, resp.CfStatus)
	assert.Empty(t, repo.checks)
}

func TestUseCase_Execute_NoOrdersKeepsPaid(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": linkedBooking(domain.PaymentStatusPaid)}}

	resp, err := newTestUseCase(repo, &fakeGateway{}, nil).Execute(context.Background(), &Request{BookingID: "b1"})
	require.NoError(t, err)

	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, NoOrdersStatus, resp.CfStatus)
	assert.False(t, resp.Changed)
	assert.Empty(t, repo.checks)
	assert.Equal(t, domain.PaymentStatusPaid, repo.bookings["b1"].PaymentStatus)
}

func TestUseCase_Execute_IsConvergent(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": linkedBooking(domain.PaymentStatusPending)}}
	gw := &fakeGateway{orders: []cashfree.LinkOrder{{CfOrderID: "5501", OrderStatus: "PAID"}}}
	uc := newTestUseCase(repo, gw, nil)

	first, err := uc.Execute(context.Background(), &Request{BookingID: "b1"})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{BookingID: "b1"})
	require.NoError(t, err)

	assert.Equal(t, first.PaymentStatus, second.PaymentStatus)
	assert.True(t, first.Changed)
	assert.False(t, second.Changed)
	assert.Equal(t, "5501", *repo.bookings["b1"].PaymentLastOrderID)
}

func TestUseCase_Execute_MissingPaymentContext(t *testing.T) {
	noGateway := linkedBooking(domain.PaymentStatusPending)
	noGateway.PaymentGateway = nil

	otherGateway := linkedBooking(domain.PaymentStatusPending)
	otherGateway.ID = "b2"
	otherGateway.PaymentGateway = ptr.Ptr("razorpay")

	noLink := linkedBooking(domain.PaymentStatusPending)
	noLink.ID = "b3"
	noLink.PaymentOrderID = ptr.Ptr("")

	repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": noGateway, "b2": otherGateway, "b3": noLink}}
	gw := &fakeGateway{}
	uc := newTestUseCase(repo, gw, nil)

	for _, id := range []string{"b1", "b2", "b3"} {
		_, err := uc.Execute(context.Background(), &Request{BookingID: id})
		assert.ErrorIs(t, err, ErrMissingPaymentContext, id)
	}
	assert.Empty(t, gw.linkID)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{bookings: map[string]*domain.Booking{}}, &fakeGateway{}, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: "missing"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{BookingID: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_GatewayError(t *testing.T) {
	repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": linkedBooking(domain.PaymentStatusPending)}}
	gw := &fakeGateway{err: &cashfree.APIError{StatusCode: http.StatusBadGateway, Message: "upstream"}}

	_, err := newTestUseCase(repo, gw, nil).Execute(context.Background(), &Request{BookingID: "b1"})
	assert.ErrorIs(t, err, ErrGateway)
	assert.ErrorIs(t, err, cashfree.ErrUnavailable)
	assert.Empty(t, repo.checks)
}

func TestUseCase_Execute_SaveError(t *testing.T) {
	repo := &fakeRepo{
		bookings: map[string]*domain.Booking{"b1": linkedBooking(domain.PaymentStatusPending)},
		saveErr:  errors.New("deadlock detected"),
	}
	gw := &fakeGateway{orders: []cashfree.LinkOrder{{OrderID: "o1", OrderStatus: "PAID"}}}

	_, err := newTestUseCase(repo, gw, nil).Execute(context.Background(), &Request{BookingID: "b1"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_RecordsMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("test", reg)

	repo := &fakeRepo{bookings: map[string]*domain.Booking{"b1": linkedBooking(domain.PaymentStatusPending)}}
	gw := &fakeGateway{orders: []cashfree.LinkOrder{{OrderID: "o1", OrderStatus: "PAID"}}}

	_, err := newTestUseCase(repo, gw, m).Execute(context.Background(), &Request{BookingID: "b1"})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "payment_verifications_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "payment_status" && label.GetValue() == "paid" {
					found = true
					assert.Equal(t, float64(1), metric.GetCounter().GetValue())
				}
			}
		}
	}
	assert.True(t, found)
}
