package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/dronewear/storefront/internal/events"
	kafkax "github.com/dronewear/storefront/internal/kafka"
	"github.com/dronewear/storefront/internal/orders"
	"github.com/dronewear/storefront/internal/redisx"
)

// CreateOrderReq matches the storefront body. total_price and per-item price
// are accepted on the wire but never read: the ledger captures prices itself.
type CreateOrderReq struct {
	UserID    int64                  `json:"user_id"`
	AddressID int64                  `json:"address_id"`
	Items     []orders.LineItemInput `json:"items"`
}

type OrdersHandler struct {
	Assembler *orders.Assembler
	Query     *orders.Query
	Producer  *kafkax.Producer
	Depleted  *kafkax.Producer
	Redis     *redis.Client
	Log       *zap.Logger
	Service   string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/api/order", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/user/{userID}", h.listUserOrders)
		r.Get("/{orderID}", h.getOrder)
	})
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, depleted, err := h.Assembler.PlaceOrder(ctx, req.UserID, req.AddressID, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheOrder(ctx, o)
	h.publishCreated(o, r.Header.Get("X-Request-Id"))
	for _, stockID := range depleted {
		h.publishDepleted(o.ID, stockID, r.Header.Get("X-Request-Id"))
	}

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache first, DB is the source of truth
	key := fmt.Sprintf(redisx.KeyOrder, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	o, err := h.Query.Get(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheOrder(ctx, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid user id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Query.ListByUser(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) cacheOrder(ctx context.Context, o orders.Order) {
	b, err := json.Marshal(o)
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrder, o.ID)
	if err := h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err(); err != nil {
		h.Log.Warn("cache order", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}

func (h *OrdersHandler) publishCreated(o orders.Order, trace string) {
	items := make([]events.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, events.LineItem{StockID: it.StockID, Quantity: it.Quantity, Price: it.Price})
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: strconv.FormatInt(o.ID, 10),
		Payload: kafkax.MustMarshal(events.OrderCreatedPayload{
			OrderID:    o.ID,
			UserID:     o.UserID,
			AddressID:  o.AddressID,
			Items:      items,
			TotalPrice: o.TotalPrice,
		}),
	}
	h.Producer.Publish(events.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) publishDepleted(orderID, stockID int64, trace string) {
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventStockDepleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: strconv.FormatInt(orderID, 10),
		Payload:       kafkax.MustMarshal(events.StockDepletedPayload{StockID: stockID, OrderID: orderID}),
	}
	h.Depleted.Publish(events.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventStockDepleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
