package review

import (
	"context"
	"database/sql"
	"fmt"

	"rz-parfum-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, r *Review) error
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, rv *Review) error {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}

	var comment sql.NullString
	if rv.Comment != nil {
		comment = sql.NullString{String: *rv.Comment, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (id, product_id, reviewer_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, rv.ID, rv.ProductID, rv.ReviewerName, rv.Rating, comment).Scan(&rv.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert review",
			zap.String("layer", "repository"),
			zap.String("product_id", rv.ProductID),
			zap.Error(err),
		)
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, reviewer_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var (
			rv      Review
			comment sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.ReviewerName, &rv.Rating, &comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if comment.Valid {
			rv.Comment = &comment.String
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}
