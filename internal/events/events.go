package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated  = "OrderCreated"
	EventStockDepleted = "StockDepleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type LineItem struct {
	StockID  int64           `json:"stock_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderCreatedPayload struct {
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	AddressID  int64           `json:"address_id"`
	Items      []LineItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// StockDepleted fires when a reservation drives quantity-on-hand to zero,
// one event per depleted item.
type StockDepletedPayload struct {
	StockID int64 `json:"stock_id"`
	OrderID int64 `json:"order_id"`
}
