package application

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

// Publisher abstracts the message broker so services can be tested without
// a live RabbitMQ. helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// pageFrom coerces pagination query strings into a window. Absent or
// non-numeric values fall back to pageIndex=0, pageSize=10; the validators
// upstream only guarantee "non-negative numeric string or absent".
func pageFrom(indexStr, sizeStr string) repository.Page {
	idx, err := strconv.ParseInt(indexStr, 10, 64)
	if err != nil || idx < 0 {
		idx = 0
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size <= 0 {
		size = 10
	}
	return repository.Page{Index: idx, Size: size}
}

// parseID converts a hex identifier, mapping garbage input to NotFound for
// the named resource (an unparseable id can never match a record).
func parseID(hex, resource string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperror.NotFound(resource, hex)
	}
	return id, nil
}

// parseActorID converts the authenticated caller id; failure means the
// token carried garbage, which is an auth problem rather than a lookup miss.
func parseActorID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperror.Unauthorized("invalid caller identity")
	}
	return id, nil
}
