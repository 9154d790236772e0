package create_payment_link

import (
	"encoding/json"
	"fmt"
	"strings"

	createPaymentLink "github.com/m04kA/AiroFix-BookingService/internal/usecase/create_payment_link"
)

// CreatePaymentLinkRequest HTTP request model
// id бронирования принимается под ключами bookingId, id и booking_id
type CreatePaymentLinkRequest struct {
	BookingID      string       `json:"bookingId"`
	ID             string       `json:"id"`
	BookingIDSnake string       `json:"booking_id"`
	CustomerName   *string      `json:"customerName,omitempty"`
	Phone          *string      `json:"phone,omitempty"`
	Email          *string      `json:"email,omitempty"`
	Amount         *json.Number `json:"amount,omitempty"` // число или строка с числом
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreatePaymentLinkRequest) ToUseCaseRequest() (*createPaymentLink.Request, error) {
	req := &createPaymentLink.Request{
		BookingID:    firstNonEmpty(r.BookingID, r.ID, r.BookingIDSnake),
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Email:        r.Email,
	}

	if r.Amount != nil && r.Amount.String() != "" {
		amount, err := r.Amount.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", r.Amount.String(), err)
		}
		req.Amount = &amount
	}

	return req, nil
}

// CreatePaymentLinkResponse HTTP response model
type CreatePaymentLinkResponse struct {
	Success     bool   `json:"success"`
	PaymentLink string `json:"paymentLink"`
	LinkID      string `json:"linkId"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
