package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
)

func TestDecodeJSON(t *testing.T) {
	var v map[string]string

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodeOptionalJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken"))
	assert.Error(t, DecodeOptionalJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"b"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "b", v["a"])
}

func TestRespondGatewayError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "rejected with json body",
			err:  fmt.Errorf("wrapped: %w", &cashfree.APIError{
				StatusCode: http.StatusBadRequest,
				Message:    "link_amount is invalid",
				Body:       []byte(`{"message":"link_amount is invalid","code":"link_post_failed"}`),
			}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"link_amount is invalid","raw":{"message":"link_amount is invalid","code":"link_post_failed"}}`,
		},
		{
			name: "unavailable with text body",
			err:  &cashfree.APIError{
				StatusCode: http.StatusServiceUnavailable,
				Body:       []byte("upstream down"),
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"success":false,"error":"Gateway failed.","raw":"upstream down"}`,
		},
		{
			name:       "network error",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"success":false,"error":"Gateway failed."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondGatewayError(w, tt.err, "Gateway failed.")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestQueryBool(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "1": true, "YES": true, "false": false, "": false, "on": false} {
		r := httptest.NewRequest(http.MethodGet, "/?all="+raw, nil)
		assert.Equal(t, want, QueryBool(r, "all"), raw)
	}
}
