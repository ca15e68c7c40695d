package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderPlaced is the payload of an order.placed event.
type OrderPlaced struct {
	OrderID  string      `json:"orderId"`
	FoodID   string      `json:"foodId,omitempty"`
	Quantity interface{} `json:"quantity,omitempty"`
	Order    Document    `json:"order"`
	PlacedAt time.Time   `json:"placedAt"`
}

// NewOrderPlaced builds the event payload for an inserted order.
func NewOrderPlaced(order Document, insertedID interface{}, at time.Time) OrderPlaced {
	return OrderPlaced{
		OrderID:  IDString(insertedID),
		FoodID:   order.FoodReference(),
		Quantity: order[FieldQuantity],
		Order:    order,
		PlacedAt: at,
	}
}

// IDString renders a store identifier as text.
func IDString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
