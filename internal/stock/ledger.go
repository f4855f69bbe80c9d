package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Ledger owns quantity-on-hand mutations. Reserve runs inside a transaction
// the caller controls, so one order's reservations and its insert commit or
// roll back as a unit.
type Ledger struct{}

// Reserve locks the stock row, checks quantity-on-hand against qty and
// decrements it. Returns the price in effect under the lock and the
// quantity remaining after the decrement. The row stays locked until the
// caller's transaction finishes, so a concurrent Reserve on the same item
// waits and then sees the decremented value, never a stale read.
func (Ledger) Reserve(ctx context.Context, tx pgx.Tx, stockID int64, qty int) (decimal.Decimal, int, error) {
	if qty <= 0 {
		return decimal.Zero, 0, fmt.Errorf("reserve stock %d: quantity must be positive", stockID)
	}

	var price decimal.Decimal
	var onHand int
	err := tx.QueryRow(ctx,
		`SELECT price, quantity FROM stock WHERE stock_id = $1 FOR UPDATE`,
		stockID).Scan(&price, &onHand)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, 0, fmt.Errorf("stock %d: %w", stockID, ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("lock stock %d: %w", stockID, err)
	}

	if onHand < qty {
		return decimal.Zero, 0, &InsufficientError{StockID: stockID, Requested: qty, Available: onHand}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE stock SET quantity = quantity - $2 WHERE stock_id = $1`,
		stockID, qty); err != nil {
		return decimal.Zero, 0, fmt.Errorf("decrement stock %d: %w", stockID, err)
	}
	return price, onHand - qty, nil
}
