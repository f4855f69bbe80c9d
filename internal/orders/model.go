package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is the persisted shape: quantity plus the unit price captured at
// reservation time. The JSON array in orders.items keeps the submitted order.
type LineItem struct {
	StockID  int64           `json:"stock_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineItemInput is what the client may set. Any client-supplied price is
// ignored; the ledger captures the real one under lock.
type LineItemInput struct {
	StockID  int64 `json:"stock_id"`
	Quantity int   `json:"quantity"`
}

type Order struct {
	ID         int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	AddressID  int64           `json:"address_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []LineItem      `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Total sums quantity times captured price across the lines.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
