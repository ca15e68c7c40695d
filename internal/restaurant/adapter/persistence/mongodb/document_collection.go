package mongodb

import (
	"context"
	"errors"
	"fmt"

	"restaurant-management/internal/restaurant/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documentCollection holds the single-call operations every resource
// repository shares. Results are returned as the store reports them.
type documentCollection struct {
	col  CollectionInterface
	name string
}

func newDocumentCollection(col CollectionInterface, name string) documentCollection {
	return documentCollection{col: col, name: name}
}

func (d documentCollection) insert(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	if doc == nil {
		doc = model.Document{}
	}
	id, err := d.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", d.name, err)
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (d documentCollection) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]model.Document, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := d.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", d.name, err)
	}
	defer cur.Close(ctx)

	docs := make([]model.Document, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", d.name, err)
	}
	if docs == nil {
		docs = make([]model.Document, 0)
	}
	return docs, nil
}

// findByID returns nil, nil when no document has the id.
func (d documentCollection) findByID(ctx context.Context, id string) (model.Document, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}

	var doc model.Document
	if err := d.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s document %s: %w", d.name, id, err)
	}
	return doc, nil
}

func (d documentCollection) update(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*model.UpdateResult, error) {
	res, err := d.col.UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", d.name, err)
	}
	return &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.Matched(),
		ModifiedCount: res.Modified(),
		UpsertedCount: res.UpsertedCount(),
		UpsertedID:    res.UpsertedID(),
	}, nil
}

func (d documentCollection) deleteByID(ctx context.Context, id string) (*model.DeleteResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}

	res, err := d.col.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s document %s: %w", d.name, id, err)
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: res.Deleted()}, nil
}
