package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Query is the read side: no locks, no mutation.
type Query struct{ DB *pgxpool.Pool }

func (q *Query) Get(ctx context.Context, orderID int64) (Order, error) {
	var o Order
	var blob []byte
	err := q.DB.QueryRow(ctx, `
		SELECT order_id, user_id, address_id, total_price, items, created_at
		FROM orders WHERE order_id = $1`,
		orderID,
	).Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalPrice, &blob, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order %d: %w", orderID, err)
	}
	if err := json.Unmarshal(blob, &o.Items); err != nil {
		return Order{}, fmt.Errorf("decode line items of order %d: %w", orderID, err)
	}
	return o, nil
}

// ListByUser returns the user's orders newest first.
func (q *Query) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := q.DB.Query(ctx, `
		SELECT order_id, user_id, address_id, total_price, items, created_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC, order_id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var blob []byte
		if err := rows.Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalPrice, &blob, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(blob, &o.Items); err != nil {
			return nil, fmt.Errorf("decode line items of order %d: %w", o.ID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
