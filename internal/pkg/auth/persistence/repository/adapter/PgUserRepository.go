package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) CreateUser(ctx context.Context, u auth.User) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgUserRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, verified, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id::text
	`, u.Name, u.Email, u.PasswordHash, int16(u.Role), u.Verified, int16(u.Status), time.Now().UTC()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", auth.ErrEmailTaken
		}
		return "", err
	}
	return id, nil
}

func (r *PgUserRepository) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, password_hash, role, verified, status, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *PgUserRepository) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, password_hash, role, verified, status, created_at, updated_at
		FROM users
		WHERE id = $1::uuid
	`, id)
	return scanUser(row)
}

func (r *PgUserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE users SET verified = $2, updated_at = now()
		WHERE id = $1::uuid
	`, id, verified)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *PgUserRepository) SetStatus(ctx context.Context, id string, status auth.AccountStatus) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE users SET status = $2, updated_at = now()
		WHERE id = $1::uuid
	`, id, int16(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *PgUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]auth.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, email, password_hash, role, verified, status, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []auth.User
	for rows.Next() {
		var (
			u      auth.User
			role   int16
			status int16
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Verified, &status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = auth.Role(role)
		u.Status = auth.AccountStatus(status)
		users = append(users, u)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		u      auth.User
		role   int16
		status int16
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Verified, &status, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = auth.Role(role)
	u.Status = auth.AccountStatus(status)
	return &u, nil
}
