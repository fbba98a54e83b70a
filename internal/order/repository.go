package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, o *Order) (uuid.UUID, error)
	List(ctx context.Context, f Filter) ([]*Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, reference, customer_name, customer_phone, customer_city, customer_address,
	items, subtotal, delivery_fee, total, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o     Order
		items []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.Reference,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerCity,
		&o.CustomerAddress,
		&items,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	return &o, nil
}

func (r *repository) Insert(ctx context.Context, o *Order) (uuid.UUID, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Insert"),
	)

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.Reference == "" {
		o.Reference = utils.GenerateOrderReference(time.Now())
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, reference, customer_name, customer_phone, customer_city, customer_address,
			items, subtotal, delivery_fee, total, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		o.ID,
		o.Reference,
		o.CustomerName,
		o.CustomerPhone,
		o.CustomerCity,
		o.CustomerAddress,
		items,
		o.Subtotal,
		o.DeliveryFee,
		o.Total,
		o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return uuid.Nil, fmt.Errorf("insert order: %w", err)
	}

	log.Info("order inserted",
		zap.String("order_id", o.ID.String()),
		zap.String("reference", o.Reference),
		zap.Int64("total", o.Total),
	)
	return o.ID, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]*Order, error) {
	f = f.normalize()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("status", string(f.Status)),
		zap.Int("limit", f.Limit),
		zap.Int("offset", f.Offset),
	)

	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	argIndex := 1

	if f.Status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Debug("list orders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return fmt.Errorf("update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	log.Info("order status updated")
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int, len(AllStatuses))
	for rows.Next() {
		var (
			status Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("count orders: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
