package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/dronewear/storefront/internal/events"
	kafkax "github.com/dronewear/storefront/internal/kafka"
	"github.com/dronewear/storefront/internal/orders"
	"github.com/dronewear/storefront/internal/redisx"
)

// CacheWarmer consumes order.created and writes the full order document into
// the redis cache, so the first GET after placement never touches Postgres.
type CacheWarmer struct {
	Query       *orders.Query
	Redis       *redis.Client
	Log         *zap.Logger
	ServiceName string
}

// HandleOrderCreated is the consumer handler. Returning nil commits the offset.
func (s *CacheWarmer) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != events.EventOrderCreated {
		return nil // ignore
	}

	// dedup by event id; redelivery is harmless but skipping is cheaper
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[events.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	o, err := s.Query.Get(ctx, p.OrderID)
	if err != nil {
		// order may be gone or DB unreachable; retry via redelivery
		return err
	}

	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(redisx.KeyOrder, o.ID)
	if err := s.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err(); err != nil {
		return err
	}
	s.Log.Debug("order cached", zap.String("order_id", strconv.FormatInt(o.ID, 10)))
	return nil
}
