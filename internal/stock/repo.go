package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo covers the administrative surface: catalog CRUD and restock.
// Reservation goes through Ledger only.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, in ItemInput) (Item, error) {
	var it Item
	err := r.DB.QueryRow(ctx, `
		INSERT INTO stock(name, description, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING stock_id, name, description, price, quantity`,
		in.Name, in.Description, in.Price, in.Quantity,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Quantity)
	if err != nil {
		return Item{}, fmt.Errorf("insert stock: %w", err)
	}
	return it, nil
}

func (r *Repo) Get(ctx context.Context, stockID int64) (Item, error) {
	var it Item
	err := r.DB.QueryRow(ctx,
		`SELECT stock_id, name, description, price, quantity FROM stock WHERE stock_id = $1`,
		stockID,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("get stock %d: %w", stockID, err)
	}
	return it, nil
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT stock_id, name, description, price, quantity FROM stock ORDER BY stock_id`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Update is the administrative restock/repricing path. The CHECK constraint
// on quantity keeps it from going negative even here.
func (r *Repo) Update(ctx context.Context, stockID int64, in ItemInput) (Item, error) {
	var it Item
	err := r.DB.QueryRow(ctx, `
		UPDATE stock
		SET name = $2, description = $3, price = $4, quantity = $5
		WHERE stock_id = $1
		RETURNING stock_id, name, description, price, quantity`,
		stockID, in.Name, in.Description, in.Price, in.Quantity,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("update stock %d: %w", stockID, err)
	}
	return it, nil
}

func (r *Repo) Delete(ctx context.Context, stockID int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM stock WHERE stock_id = $1`, stockID)
	if err != nil {
		return fmt.Errorf("delete stock %d: %w", stockID, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
