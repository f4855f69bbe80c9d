package stock

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronewear/storefront/internal/postgres"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE orders, feedback, address, users, stock RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func seedItem(t *testing.T, pool *pgxpool.Pool, price string, qty int) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO stock(name, description, price, quantity)
		VALUES ('thing', '', $1, $2) RETURNING stock_id`, price, qty).Scan(&id)
	require.NoError(t, err)
	return id
}

func inTx(t *testing.T, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	t.Helper()
	ctx := context.Background()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	require.NoError(t, err)
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	require.NoError(t, tx.Commit(ctx))
	return nil
}

func TestLedgerReserve(t *testing.T) {
	pool := testPool(t)
	id := seedItem(t, pool, "4.20", 10)
	var ledger Ledger

	err := inTx(t, pool, func(tx pgx.Tx) error {
		price, remaining, err := ledger.Reserve(context.Background(), tx, id, 4)
		if err != nil {
			return err
		}
		assert.True(t, price.Equal(decimal.RequireFromString("4.20")))
		assert.Equal(t, 6, remaining)
		return nil
	})
	require.NoError(t, err)

	var qty int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT quantity FROM stock WHERE stock_id = $1`, id).Scan(&qty))
	assert.Equal(t, 6, qty)
}

func TestLedgerReserve_Insufficient(t *testing.T) {
	pool := testPool(t)
	id := seedItem(t, pool, "4.20", 3)
	var ledger Ledger

	err := inTx(t, pool, func(tx pgx.Tx) error {
		_, _, err := ledger.Reserve(context.Background(), tx, id, 4)
		return err
	})
	var insufficient *InsufficientError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, id, insufficient.StockID)
	assert.Equal(t, 4, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)

	var qty int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT quantity FROM stock WHERE stock_id = $1`, id).Scan(&qty))
	assert.Equal(t, 3, qty, "failed reserve must not mutate")
}

func TestLedgerReserve_NotFound(t *testing.T) {
	pool := testPool(t)
	var ledger Ledger

	err := inTx(t, pool, func(tx pgx.Tx) error {
		_, _, err := ledger.Reserve(context.Background(), tx, 123456, 1)
		return err
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
