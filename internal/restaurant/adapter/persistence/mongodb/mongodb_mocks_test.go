package mongodb

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mockCollection is a testify mock of CollectionInterface.
type mockCollection struct {
	mock.Mock
}

func (m *mockCollection) InsertOne(ctx context.Context, doc interface{}) (interface{}, error) {
	args := m.Called(ctx, doc)
	return args.Get(0), args.Error(1)
}

func (m *mockCollection) FindOne(ctx context.Context, filter interface{}) SingleResultInterface {
	args := m.Called(ctx, filter)
	return args.Get(0).(SingleResultInterface)
}

func (m *mockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorInterface, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CursorInterface), args.Error(1)
}

func (m *mockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultInterface, error) {
	args := m.Called(ctx, filter, update, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(UpdateResultInterface), args.Error(1)
}

func (m *mockCollection) DeleteOne(ctx context.Context, filter interface{}) (DeleteResultInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(DeleteResultInterface), args.Error(1)
}

// stubSingleResult decodes a fixed document or returns err.
type stubSingleResult struct {
	doc model.Document
	err error
}

func (s *stubSingleResult) Decode(v interface{}) error {
	if s.err != nil {
		return s.err
	}
	*(v.(*model.Document)) = s.doc
	return nil
}

// stubCursor yields a fixed slice of documents.
type stubCursor struct {
	docs   []model.Document
	err    error
	closed bool
}

func (s *stubCursor) All(ctx context.Context, results interface{}) error {
	if s.err != nil {
		return s.err
	}
	out := results.(*[]model.Document)
	*out = append((*out)[:0], s.docs...)
	return nil
}

func (s *stubCursor) Close(ctx context.Context) error {
	s.closed = true
	return nil
}

type stubUpdateResult struct {
	matched, modified, upserted int64
	id                          interface{}
}

func (s stubUpdateResult) Matched() int64          { return s.matched }
func (s stubUpdateResult) Modified() int64         { return s.modified }
func (s stubUpdateResult) UpsertedCount() int64    { return s.upserted }
func (s stubUpdateResult) UpsertedID() interface{} { return s.id }

type stubDeleteResult int64

func (s stubDeleteResult) Deleted() int64 { return int64(s) }
