package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dronewear/storefront/internal/stock"
)

// Assembler places orders: every reservation and the order insert run in one
// transaction, so two concurrent orders fighting over the same stock item
// serialize on the row lock and a failed line leaves nothing decremented.
type Assembler struct {
	DB     *pgxpool.Pool
	Ledger stock.Ledger
	Log    *zap.Logger
}

// PlaceOrder validates the request, reserves each line against the stock
// ledger, computes the total from the captured prices and persists the order.
// The returned slice lists stock ids whose quantity reached zero in this
// order, for the depletion event.
func (a *Assembler) PlaceOrder(ctx context.Context, userID, addressID int64, items []LineItemInput) (Order, []int64, error) {
	if len(items) == 0 {
		return Order{}, nil, ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return Order{}, nil, fmt.Errorf("stock %d: %w", it.StockID, ErrInvalidQuantity)
		}
	}

	tx, err := a.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lines := make([]LineItem, 0, len(items))
	var depleted []int64
	for _, it := range items {
		price, remaining, err := a.Ledger.Reserve(ctx, tx, it.StockID, it.Quantity)
		if err != nil {
			return Order{}, nil, err
		}
		lines = append(lines, LineItem{StockID: it.StockID, Quantity: it.Quantity, Price: price})
		if remaining == 0 {
			depleted = append(depleted, it.StockID)
		}
	}
	total := Total(lines)

	blob, err := json.Marshal(lines)
	if err != nil {
		return Order{}, nil, fmt.Errorf("encode line items: %w", err)
	}

	o := Order{UserID: userID, AddressID: addressID, TotalPrice: total, Items: lines}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, address_id, total_price, items)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id, created_at`,
		userID, addressID, total, blob,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Order{}, nil, ErrBadReference
		}
		return Order{}, nil, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		// reservations never outlive the tx; commit failure rolls the
		// decrements back with the insert
		return Order{}, nil, fmt.Errorf("commit order: %w", err)
	}

	a.Log.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.Int64("user_id", userID),
		zap.String("total", total.String()),
		zap.Int("lines", len(lines)),
	)
	return o, depleted, nil
}
