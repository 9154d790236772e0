package verify_payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
	verifyPayment "github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
	"github.com/m04kA/AiroFix-BookingService/pkg/ptr"
)

type fakeUseCase struct {
	resp *verifyPayment.Response
	err  error
	got  *verifyPayment.Request
}

func (u *fakeUseCase) Execute(_ context.Context, req *verifyPayment.Request) (*verifyPayment.Response, error) {
	u.got = req
	return u.resp, u.err
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, req)
	return w
}

func TestHandle_Paid(t *testing.T) {
	uc := &fakeUseCase{resp: &verifyPayment.Response{
		PaymentStatus: "paid",
		CfStatus:      "PAID",
		OrderID:       ptr.Ptr("order_1"),
		Changed:       true,
	}}
	w := serve(uc, `{"id": " b1 "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "paymentStatus": "paid", "cfStatus": "PAID", "orderId": "order_1"}`, w.Body.String())
	assert.Equal(t, "b1", uc.got.BookingID)
}

func TestHandle_NoOrders(t *testing.T) {
	uc := &fakeUseCase{resp: &verifyPayment.Response{PaymentStatus: "pending", CfStatus: verifyPayment.NoOrdersStatus}}
	w := serve(uc, `{"bookingId": "b1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "paymentStatus": "pending", "cfStatus": "NO_ORDERS"}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing id", err: verifyPayment.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: msgMissingBookingID},
		{name: "not found", err: verifyPayment.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: msgNotFound},
		{name: "no link", err: verifyPayment.ErrMissingPaymentContext, wantStatus: http.StatusBadRequest, wantMsg: msgNoPaymentContext},
		{
			name:       "gateway down",
			err:        fmt.Errorf("%w: %w", verifyPayment.ErrGateway, &cashfree.APIError{StatusCode: http.StatusInternalServerError}),
			wantStatus: http.StatusBadGateway,
			wantMsg:    msgGatewayFailed,
		},
		{name: "store failure", err: verifyPayment.ErrInternal, wantStatus: http.StatusInternalServerError, wantMsg: "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, `{"bookingId": "b1"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}
