package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
)

// ErrNotFound is the empty-result marker. Services translate it into a
// domain error; the repository itself never decides an HTTP outcome.
var ErrNotFound = errors.New("record not found")

// Page describes a result window. The repository enforces no bounds; the
// calling service supplies defaults.
type Page struct {
	Index int64
	Size  int64
	Sort  bson.D
}

// Skip returns the number of documents to skip for this window.
func (p Page) Skip() int64 { return p.Index * p.Size }

// Repository is the generic read/write contract every persisted entity type
// implements against the document store.
type Repository[T any] interface {
	// Find returns one page of matching records.
	Find(ctx context.Context, filter bson.M, page Page) ([]T, error)
	// FindOne returns the record with the given id or ErrNotFound.
	FindOne(ctx context.Context, id primitive.ObjectID) (*T, error)
	// FindOneBy returns the first record matching filter or ErrNotFound.
	FindOneBy(ctx context.Context, filter bson.M, sort bson.D) (*T, error)
	// Aggregate runs an opaque pipeline defined by the calling service.
	Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error)
	// Create inserts a record whose identity was assigned by the domain.
	Create(ctx context.Context, doc *T) error
	// Update applies an update document and returns the updated record.
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error)
	// Delete removes the record and returns it, so callers can run
	// post-delete domain logic without a second fetch.
	Delete(ctx context.Context, id primitive.ObjectID) (*T, error)
	// DeleteMany removes all matching records and returns them.
	DeleteMany(ctx context.Context, filter bson.M) ([]T, error)
}

type (
	UserRepository     = Repository[entity.User]
	ItemRepository     = Repository[entity.Item]
	CategoryRepository = Repository[entity.Category]
	PostRepository     = Repository[entity.Post]
	ImageRepository    = Repository[entity.Image]
	OtpRepository      = Repository[entity.Otp]
	FavoriteRepository = Repository[entity.Favorite]
)
