package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPaymentNotFound is returned when a payment id does not exist.
var ErrPaymentNotFound = errors.New("payment not found")

// Payment is a completed charge recorded against a user. Amounts use exact
// decimals; float rounding is not acceptable for money.
type Payment struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Currency  string          `db:"currency" json:"currency"`
	Purpose   string          `db:"purpose" json:"purpose"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewPayment validates and normalizes a payment candidate.
func NewPayment(userID string, amount decimal.Decimal, currency, purpose string) (*Payment, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("amount must be positive")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "BDT"
	}
	return &Payment{
		UserID:    userID,
		Amount:    amount,
		Currency:  currency,
		Purpose:   strings.TrimSpace(purpose),
		CreatedAt: time.Now().UTC(),
	}, nil
}
