package update_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
)

type fakeService struct {
	err   error
	gotID string
	got   *models.UpdateBookingRequest
}

func (s *fakeService) UpdateSingle(_ context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.gotID = id
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, CustomerName: "Asha", Status: "confirmed", PaymentStatus: "pending"}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/bookings/b1", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_SparseBody(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, `{"paymentPreference": "cod", "assignedEngineer": null}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"id":"b1"`)
	assert.Equal(t, "b1", svc.gotID)

	require.NotNil(t, svc.got)
	pref, ok := svc.got.PaymentPreference.Get()
	assert.True(t, ok)
	assert.Equal(t, "cod", pref)

	// null передан явно, значит ключ задан
	engineer, ok := svc.got.AssignedEngineer.Get()
	assert.True(t, ok)
	assert.Nil(t, engineer)

	// отсутствующие ключи не трогаются
	assert.False(t, svc.got.Status.Set)
	assert.False(t, svc.got.CustomerName.Set)
	assert.False(t, svc.got.City.Set)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", body: `{"status": "confirmed"}`, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: msgNotFound},
		{name: "terminal booking", body: `{"status": "confirmed"}`, err: fmt.Errorf("%w: booking is completed", bookings.ErrInvalidTransition), wantStatus: http.StatusBadRequest, wantMsg: msgInvalidTransition},
		{name: "invalid value", body: `{"paymentStatus": ""}`, err: fmt.Errorf("%w: %w", bookings.ErrInvalidInput, models.ErrInvalidField), wantStatus: http.StatusBadRequest, wantMsg: msgInvalidUpdate},
		{name: "store failure", body: `{"notes": "x"}`, err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError, wantMsg: "Something went wrong"},
		{name: "broken json", body: `{"status":`, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestHandle_BodyErrorsSkipService(t *testing.T) {
	svc := &fakeService{}
	serve(svc, "")

	assert.Nil(t, svc.got)
}
