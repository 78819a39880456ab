package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	payment "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/persistence/repository/port"
)

// RecordPaymentInput describes a completed charge to record.
type RecordPaymentInput struct {
	UserID   string
	Amount   decimal.Decimal
	Currency string
	Purpose  string
}

// RecordPaymentUseCase validates and persists a payment record. The gateway
// callback is trusted to have settled the charge already.
type RecordPaymentUseCase struct {
	Repo repository.PaymentRepository
}

func NewRecordPaymentUseCase(repo repository.PaymentRepository) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{Repo: repo}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, in RecordPaymentInput) (*payment.Payment, error) {
	candidate, err := payment.NewPayment(in.UserID, in.Amount, in.Currency, in.Purpose)
	if err != nil {
		return nil, err
	}
	stored, err := uc.Repo.CreatePayment(ctx, *candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return stored, nil
}
