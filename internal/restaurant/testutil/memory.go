// Package testutil provides in-memory repositories for handler and module tests.
package testutil

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"restaurant-management/internal/restaurant/domain/model"
	apperrors "restaurant-management/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection stores documents by ObjectID, in insertion order.
type MemoryCollection struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]model.Document
	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{docs: make(map[primitive.ObjectID]model.Document)}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewInvalidIDError(id)
	}
	return oid, nil
}

func clone(doc model.Document) model.Document {
	out := make(model.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (m *MemoryCollection) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	oid := primitive.NewObjectID()
	stored := clone(doc)
	stored[model.FieldID] = oid
	m.docs[oid] = stored
	m.order = append(m.order, oid)
	return &model.InsertResult{Acknowledged: true, InsertedID: oid}, nil
}

func (m *MemoryCollection) filter(match func(model.Document) bool) ([]model.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Document, 0, len(m.order))
	for _, oid := range m.order {
		if doc := m.docs[oid]; match(doc) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

func (m *MemoryCollection) List(ctx context.Context) ([]model.Document, error) {
	return m.filter(func(model.Document) bool { return true })
}

func (m *MemoryCollection) GetByID(ctx context.Context, id string) (model.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[oid]
	if !ok {
		return nil, nil
	}
	return clone(doc), nil
}

func (m *MemoryCollection) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[oid]; !ok {
		return &model.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.docs, oid)
	for i, o := range m.order {
		if o == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// Len returns the number of stored documents.
func (m *MemoryCollection) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// MemoryFoodRepository implements repository.FoodRepository in memory.
type MemoryFoodRepository struct {
	*MemoryCollection
}

func NewMemoryFoodRepository() *MemoryFoodRepository {
	return &MemoryFoodRepository{MemoryCollection: NewMemoryCollection()}
}

func (r *MemoryFoodRepository) Search(ctx context.Context, text string) ([]model.Document, error) {
	needle := strings.ToLower(text)
	return r.filter(func(doc model.Document) bool {
		name, _ := doc[model.FieldName].(string)
		return strings.Contains(strings.ToLower(name), needle)
	})
}

func (r *MemoryFoodRepository) ListByOwner(ctx context.Context, email string) ([]model.Document, error) {
	return r.filter(func(doc model.Document) bool {
		return doc[model.FieldEmail] == email
	})
}

func (r *MemoryFoodRepository) Upsert(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := fields.Without(model.FieldID)
	if len(set) == 0 {
		return nil, apperrors.NewValidationError("update body must contain at least one field")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[oid]
	if !ok {
		doc = model.Document{model.FieldID: oid}
		for k, v := range set {
			doc[k] = v
		}
		r.docs[oid] = doc
		r.order = append(r.order, oid)
		return &model.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: oid}, nil
	}

	var modified int64
	for k, v := range set {
		if !reflect.DeepEqual(doc[k], v) {
			modified = 1
		}
		doc[k] = v
	}
	return &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *MemoryFoodRepository) IncrementOrderCount(ctx context.Context, id string) (*model.UpdateResult, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[oid]
	if !ok {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	doc[model.FieldOrderCount] = number(doc[model.FieldOrderCount]) + 1
	return &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

// MemoryOrderRepository implements repository.OrderRepository in memory.
type MemoryOrderRepository struct {
	*MemoryCollection
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{MemoryCollection: NewMemoryCollection()}
}

func (r *MemoryOrderRepository) ListByQuantityDesc(ctx context.Context) ([]model.Document, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return number(docs[i][model.FieldQuantity]) > number(docs[j][model.FieldQuantity])
	})
	return docs, nil
}

// number reads a stored numeric field; JSON bodies decode numbers as float64.
func number(v interface{}) float64 {
	switch q := v.(type) {
	case float64:
		return q
	case int:
		return float64(q)
	case int32:
		return float64(q)
	case int64:
		return float64(q)
	default:
		return 0
	}
}
