package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return testNow }

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	filter   domain.PendingPaymentsFilter
}

func (r *fakeRepo) ListPendingPayments(_ context.Context, filter domain.PendingPaymentsFilter) ([]*domain.Booking, error) {
	r.filter = filter
	return r.bookings, r.err
}

type fakeVerifier struct {
	results map[string]*verify_payment.Response
	calls   []string
}

func (v *fakeVerifier) Execute(_ context.Context, req *verify_payment.Request) (*verify_payment.Response, error) {
	v.calls = append(v.calls, req.BookingID)
	resp, ok := v.results[req.BookingID]
	if !ok {
		return nil, verify_payment.ErrGateway
	}
	return resp, nil
}

func newTestJob(repo *fakeRepo, verifier *fakeVerifier) *Job {
	j := NewJob(repo, verifier, Config{
		Schedule:  "*/10 * * * *",
		Lookback:  48 * time.Hour,
		BatchSize: 25,
	}, logger.NewNop())
	j.timeProvider = fixedTime{}
	return j
}

func TestJob_RunOnce(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}}
	verifier := &fakeVerifier{results: map[string]*verify_payment.Response{
		"b1": {PaymentStatus: "paid", CfStatus: "PAID", Changed: true},
		"b3": {PaymentStatus: "pending", CfStatus: verify_payment.NoOrdersStatus},
	}}

	result, err := newTestJob(repo, verifier).RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Result{Checked: 2, Changed: 1, Failed: 1}, result)
	assert.Equal(t, []string{"b1", "b2", "b3"}, verifier.calls)
	assert.Equal(t, testNow.Add(-48*time.Hour).UnixMilli(), repo.filter.CreatedAfter)
	assert.Equal(t, 25, repo.filter.Limit)
}

func TestJob_RunOnce_ListError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	verifier := &fakeVerifier{}

	_, err := newTestJob(repo, verifier).RunOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, verifier.calls)
}

func TestJob_RunOnce_StopsOnCancelledContext(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{{ID: "b1"}, {ID: "b2"}}}
	verifier := &fakeVerifier{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newTestJob(repo, verifier).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
	assert.Empty(t, verifier.calls)
}

func TestJob_StartStop(t *testing.T) {
	j := newTestJob(&fakeRepo{}, &fakeVerifier{})
	require.NoError(t, j.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, j.Stop(ctx))
}

func TestJob_Start_InvalidSchedule(t *testing.T) {
	j := NewJob(&fakeRepo{}, &fakeVerifier{}, Config{Schedule: "every ten minutes"}, logger.NewNop())
	assert.ErrorIs(t, j.Start(), ErrInvalidSchedule)
}
