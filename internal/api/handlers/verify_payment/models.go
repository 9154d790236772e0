package verify_payment

import (
	"strings"

	verifyPayment "github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
)

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	BookingID      string `json:"bookingId"`
	ID             string `json:"id"`
	BookingIDSnake string `json:"booking_id"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *VerifyPaymentRequest) ToUseCaseRequest() *verifyPayment.Request {
	for _, v := range []string{r.BookingID, r.ID, r.BookingIDSnake} {
		if v = strings.TrimSpace(v); v != "" {
			return &verifyPayment.Request{BookingID: v}
		}
	}
	return &verifyPayment.Request{}
}

// VerifyPaymentResponse HTTP response model
type VerifyPaymentResponse struct {
	Success       bool    `json:"success"`
	PaymentStatus string  `json:"paymentStatus"`
	CfStatus      string  `json:"cfStatus"`
	OrderID       *string `json:"orderId,omitempty"`
}
