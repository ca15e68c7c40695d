package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// StreamClient is the part of *redis.Client the order stream needs.
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisOrderStream appends placed orders to a Redis stream so downstream
// consumers (kitchen display, analytics) can read them with XREAD.
type RedisOrderStream struct {
	client StreamClient
	stream string
	maxLen int64
	log    logger.Logger
}

// NewRedisOrderStream creates a stream writer. maxLen <= 0 disables trimming.
func NewRedisOrderStream(client StreamClient, stream string, maxLen int64, log logger.Logger) *RedisOrderStream {
	if log == nil {
		log = logger.Noop()
	}
	return &RedisOrderStream{
		client: client,
		stream: stream,
		maxLen: maxLen,
		log:    log.WithComponent("order_stream"),
	}
}

// Append writes one entry for ev and returns the entry id.
func (s *RedisOrderStream) Append(ctx context.Context, ev model.OrderPlaced) (string, error) {
	payload, err := json.Marshal(ev.Order)
	if err != nil {
		return "", fmt.Errorf("failed to encode order %s: %w", ev.OrderID, err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"order_id":  ev.OrderID,
			"food_id":   ev.FoodID,
			"quantity":  fmt.Sprint(ev.Quantity),
			"placed_at": ev.PlacedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			"payload":   string(payload),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	id, err := s.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("failed to append order %s to stream %s: %w", ev.OrderID, s.stream, err)
	}
	return id, nil
}

// HandleOrderPlaced is an eventbus.Handler for order.placed.
func (s *RedisOrderStream) HandleOrderPlaced(ctx context.Context, event eventbus.Event) error {
	ev, ok := event.Data().(model.OrderPlaced)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", event.Type(), event.Data())
	}

	id, err := s.Append(ctx, ev)
	if err != nil {
		return err
	}
	s.log.WithContext(ctx).Debugf("order %s appended to %s as %s", ev.OrderID, s.stream, id)
	return nil
}
