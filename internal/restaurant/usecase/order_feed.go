package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"

	"github.com/google/uuid"
)

// OrderFeed fans order.placed events out to live subscribers. A subscriber
// whose buffer is full misses the message rather than blocking the others.
type OrderFeed struct {
	mu          sync.RWMutex
	subscribers map[string]chan []byte
	buffer      int
	log         logger.Logger
}

// NewOrderFeed creates a feed whose subscriber channels hold buffer messages.
func NewOrderFeed(buffer int, log logger.Logger) *OrderFeed {
	if buffer <= 0 {
		buffer = 16
	}
	if log == nil {
		log = logger.Noop()
	}
	return &OrderFeed{
		subscribers: make(map[string]chan []byte),
		buffer:      buffer,
		log:         log.WithComponent("order_feed"),
	}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (f *OrderFeed) Subscribe() (string, <-chan []byte, func()) {
	id := uuid.NewString()
	ch := make(chan []byte, f.buffer)

	f.mu.Lock()
	f.subscribers[id] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subscribers[id]; ok {
			delete(f.subscribers, id)
			close(ch)
		}
	}
	return id, ch, cancel
}

// SubscriberCount returns the number of live subscribers.
func (f *OrderFeed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// Broadcast sends msg to every subscriber without blocking.
func (f *OrderFeed) Broadcast(msg []byte) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for id, ch := range f.subscribers {
		select {
		case ch <- msg:
		default:
			f.log.Warnf("subscriber %s is slow, dropping order message", id)
		}
	}
}

// HandleOrderPlaced is an eventbus.Handler for order.placed.
func (f *OrderFeed) HandleOrderPlaced(ctx context.Context, event eventbus.Event) error {
	ev, ok := event.Data().(model.OrderPlaced)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", event.Type(), event.Data())
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode order %s: %w", ev.OrderID, err)
	}
	f.Broadcast(msg)
	return nil
}

// Close disconnects every subscriber.
func (f *OrderFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ch := range f.subscribers {
		delete(f.subscribers, id)
		close(ch)
	}
}
