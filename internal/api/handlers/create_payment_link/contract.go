package create_payment_link

import (
	"context"

	createPaymentLink "github.com/m04kA/AiroFix-BookingService/internal/usecase/create_payment_link"
)

type CreatePaymentLinkUseCase interface {
	Execute(ctx context.Context, req *createPaymentLink.Request) (*createPaymentLink.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
