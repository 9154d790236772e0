package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
)

type fakeService struct {
	err       error
	gotID     string
	gotReason *string
}

func (s *fakeService) Cancel(_ context.Context, bookingID string, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.gotID = bookingID
	s.gotReason = req.Reason
	if s.err != nil {
		return nil, s.err
	}
	return &models.CancelBookingResponse{BookingID: bookingID, NewStatus: "cancelled_by_customer"}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/bookings/b1/cancel", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, `{"cancellationReason": "plans changed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "bookingId": "b1", "newStatus": "cancelled_by_customer"}`, w.Body.String())
	assert.Equal(t, "b1", svc.gotID)
	require.NotNil(t, svc.gotReason)
	assert.Equal(t, "plans changed", *svc.gotReason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.gotReason)
}

func TestHandle_TooCloseToSlot(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("wrapped: %w", &bookings.TooCloseToSlotError{
		SlotStart: 1717250000000,
		Now:       1717236000000,
		Window:    12 * time.Hour,
	})}
	w := serve(svc, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": "Bookings can only be cancelled at least 12 hours before the slot. Please call us to cancel.",
		"code": "TOO_CLOSE_TO_SLOT",
		"slotStartTs": 1717250000000,
		"now": 1717236000000
	}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: msgNotFound},
		{name: "terminal", err: bookings.ErrInvalidTransition, wantStatus: http.StatusBadRequest, wantMsg: msgCannotCancel},
		{name: "invalid reason", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidReason},
		{name: "store failure", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError, wantMsg: "Something went wrong"},
		{name: "broken body", body: "{", wantStatus: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
			assert.NotContains(t, w.Body.String(), CodeTooCloseToSlot)
		})
	}
}

func TestCancelBookingRequest_ReasonAliases(t *testing.T) {
	note := "call first"
	blank := "  "

	req := CancelBookingRequest{Reason: &blank, Note: &note}
	assert.Equal(t, &note, req.ToServiceRequest().Reason)

	assert.Nil(t, (&CancelBookingRequest{}).ToServiceRequest().Reason)
}
