package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	payment "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/domain"
)

type PgPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPgPaymentRepository(pool *pgxpool.Pool) *PgPaymentRepository {
	return &PgPaymentRepository{pool: pool}
}

func (r *PgPaymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (*payment.Payment, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgPaymentRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payments (user_id, amount, currency, purpose)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text, created_at
	`, p.UserID, p.Amount, p.Currency, p.Purpose).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgPaymentRepository) ListPaymentsByUser(ctx context.Context, userID string) ([]payment.Payment, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgPaymentRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id::text, amount, currency, purpose, created_at
		FROM payments
		WHERE user_id = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.Purpose, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return payments, nil
}
