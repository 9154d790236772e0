package list_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
)

type fakeService struct {
	gotLimit int
	err      error
}

func (s *fakeService) ListRecent(_ context.Context, limit int) (*models.BookingListResponse, error) {
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func TestHandle_Limit(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{name: "default", query: "", wantStatus: http.StatusOK, wantLimit: 100},
		{name: "explicit", query: "?limit=25", wantStatus: http.StatusOK, wantLimit: 25},
		{name: "zero", query: "?limit=0", wantStatus: http.StatusBadRequest},
		{name: "negative", query: "?limit=-3", wantStatus: http.StatusBadRequest},
		{name: "not a number", query: "?limit=all", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := httptest.NewRecorder()
			NewHandler(svc, 100, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLimit, svc.gotLimit)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"success": true, "bookings": []}`, w.Body.String())
			}
		})
	}
}

func TestHandle_StoreFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	w := httptest.NewRecorder()
	NewHandler(svc, 200, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 200, svc.gotLimit)
	assert.NotContains(t, w.Body.String(), "boom")
}
