package repository

import (
	"context"

	payment "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/domain"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	// CreatePayment persists the payment and returns it with the
	// server-assigned id and timestamp.
	CreatePayment(ctx context.Context, p payment.Payment) (*payment.Payment, error)

	// ListPaymentsByUser returns the user's payments, newest first.
	ListPaymentsByUser(ctx context.Context, userID string) ([]payment.Payment, error)
}
