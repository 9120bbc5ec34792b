package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
)

// Collection implements the generic repository contract against one Mongo
// collection. Entity constructors assign _id before the first persist, so
// inserts never need to write back a generated identifier.
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

func (c *Collection[T]) Find(ctx context.Context, filter bson.M, page repository.Page) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if page.Size > 0 {
		opts.SetSkip(page.Skip()).SetLimit(page.Size)
	}
	if page.Sort != nil {
		opts.SetSort(page.Sort)
	}
	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOneBy(ctx, bson.M{"_id": id}, nil)
}

func (c *Collection[T]) FindOneBy(ctx context.Context, filter bson.M, sort bson.D) (*T, error) {
	opts := options.FindOne()
	if sort != nil {
		opts.SetSort(sort)
	}
	var doc T
	if err := c.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error) {
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []bson.M{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T]) Create(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

func (c *Collection[T]) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	if err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) DeleteMany(ctx context.Context, filter bson.M) ([]T, error) {
	// Fetch first so callers get the removed records back.
	docs, err := c.Find(ctx, filter, repository.Page{})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return docs, nil
	}
	if _, err := c.coll.DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return docs, nil
}
