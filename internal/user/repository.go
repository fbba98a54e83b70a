package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rz-parfum-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const uniqueViolation = pq.ErrorCode("23505")

type Repository interface {
	Create(ctx context.Context, email, password string, role Role) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, password string, role Role) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING id, email, password, role, created_at",
		email, password, role,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password, role, created_at FROM users WHERE "+where+" = $1",
		arg,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, password string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2",
		password, id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
