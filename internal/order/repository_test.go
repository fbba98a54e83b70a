package order

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "reference", "customer_name", "customer_phone", "customer_city", "customer_address",
	"items", "subtotal", "delivery_fee", "total", "status", "created_at", "updated_at",
}

func orderRow(rows *sqlmock.Rows, id uuid.UUID, status Status) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id.String(), "RZ-20260114-0930-0001", "Salma", "0641973545", "Rabat", "3 Avenue Hassan II",
		[]byte(`[{"id":"1","name":"Oud Royal","price":50,"quantity":2}]`),
		100, 15, 115, string(status), now, now,
	)
}

func TestRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		o := sampleOrder()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Salma", "0641973545", "Rabat", "3 Avenue Hassan II",
				sqlmock.AnyArg(), int64(230), int64(15), int64(245), StatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		id, err := repo.Insert(ctx, o)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, id, o.ID)
		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, strings.HasPrefix(o.Reference, "RZ-"))
		assert.Equal(t, now, o.CreatedAt)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("db error"))

		_, err := repo.Insert(ctx, sampleOrder())
		assert.ErrorContains(t, err, "insert order")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT .* FROM orders ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(defaultLimit, 0).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), id, StatusPending))

		orders, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, id, orders[0].ID)
		assert.Equal(t, []Item{{ProductID: "1", Name: "Oud Royal", Price: 50, Quantity: 2}}, orders[0].Items)
	})

	t.Run("ByStatus", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE status = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(StatusShipped, 10, 20).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		orders, err := repo.List(ctx, Filter{Status: StatusShipped, Limit: 10, Offset: 20})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("CorruptItems", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(orderRowColumns).AddRow(
			uuid.NewString(), "RZ-1", "a", "b", "c", "d", []byte(`{`), 0, 0, 0, "pending", now, now,
		)
		mock.ExpectQuery(`SELECT .* FROM orders`).WillReturnRows(rows)

		_, err := repo.List(ctx, Filter{})
		assert.ErrorContains(t, err, "decode items")
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders`).WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, Filter{})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), id, StatusConfirmed))

		o, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.Equal(t, int64(115), o.Total)
		assert.Equal(t, "RZ-20260114-0930-0001", o.Reference)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, id)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(StatusDelivered, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, id, StatusDelivered))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(StatusDelivered, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, id, StatusDelivered), ErrOrderNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).WillReturnError(errors.New("db error"))

		assert.Error(t, repo.UpdateStatus(ctx, id, StatusDelivered))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM orders GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 3).
			AddRow("delivered", 2))

	counts, err := NewRepository(db).CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[Status]int{StatusPending: 3, StatusDelivered: 2}, counts)
}
