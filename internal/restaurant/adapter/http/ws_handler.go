package http

import (
	"restaurant-management/internal/shared/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// localsSubscriberEmail carries the session email across the upgrade; the
// socket handler has no access to the request's user context.
const localsSubscriberEmail = "order_feed_email"

// OrderFeed handles GET /ws/orders: a WebSocket that receives one JSON text
// message per placed order. Client messages are read and discarded.
func (h *RestaurantHTTPHandler) OrderFeed() fiber.Handler {
	upgrade := websocket.New(h.streamOrders)
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if email, err := utils.GetUserEmailFromContext(c.UserContext()); err == nil {
			c.Locals(localsSubscriberEmail, email)
		}
		return upgrade(c)
	}
}

func (h *RestaurantHTTPHandler) streamOrders(conn *websocket.Conn) {
	id, messages, cancel := h.feed.Subscribe()
	defer cancel()

	log := h.log.WithFields(map[string]interface{}{"subscriber": id})
	if email, ok := conn.Locals(localsSubscriberEmail).(string); ok && email != "" {
		log = log.WithFields(map[string]interface{}{"user_email": email})
	}
	log.Debug("order feed subscriber connected")
	defer log.Debug("order feed subscriber disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debugf("write failed: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
