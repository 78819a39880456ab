package usecase

import (
	"context"
	"fmt"

	payment "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/persistence/repository/port"
)

// ListPaymentsInput wraps the requesting user.
type ListPaymentsInput struct {
	UserID string
}

// ListPaymentsUseCase returns the user's payment history, newest first.
type ListPaymentsUseCase struct {
	Repo repository.PaymentRepository
}

func NewListPaymentsUseCase(repo repository.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{Repo: repo}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, in ListPaymentsInput) ([]payment.Payment, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	payments, err := uc.Repo.ListPaymentsByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return payments, nil
}
