package model

// Document is a schemaless store document. Request bodies are persisted as sent.
type Document map[string]interface{}

// Field names the handlers filter or update on.
const (
	FieldID         = "_id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldOrderCount = "order_count"
	FieldFoodID     = "food_id"
	FieldLegacyID   = "id"
	FieldQuantity   = "quantity"
)

// InsertResult mirrors the store's insert acknowledgement.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult mirrors the store's update acknowledgement.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult mirrors the store's delete acknowledgement.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// FoodReference returns the food identifier an order points at: food_id,
// or the legacy id field. Empty when neither is a non-empty string.
func (d Document) FoodReference() string {
	for _, key := range []string{FieldFoodID, FieldLegacyID} {
		if ref, ok := d[key].(string); ok && ref != "" {
			return ref
		}
	}
	return ""
}

// Without returns a shallow copy of d lacking key.
func (d Document) Without(key string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k != key {
			out[k] = v
		}
	}
	return out
}
