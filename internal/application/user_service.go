package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

// UserService owns profiles and follow relations. Both sides of a follow
// are updated here; the store enforces no referential integrity.
type UserService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

type UpdateProfileInput struct {
	FirstName    string
	LastName     string
	Gender       string
	Phone        string
	Address      string
	Bio          string
	ProfileImage string
}

func (s *UserService) Profile(ctx context.Context, idHex string) (*entity.User, error) {
	id, err := parseID(idHex, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.Users.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("user", idHex)
	}
	return user, err
}

func (s *UserService) ByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.Users.FindOneBy(ctx, bson.M{"username": username}, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("user", username)
	}
	return user, err
}

func (s *UserService) UpdateProfile(ctx context.Context, idHex string, in UpdateProfileInput) (*entity.User, error) {
	id, err := parseID(idHex, "user")
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	for k, v := range map[string]string{
		"firstName":    in.FirstName,
		"lastName":     in.LastName,
		"gender":       in.Gender,
		"phone":        in.Phone,
		"address":      in.Address,
		"bio":          in.Bio,
		"profileImage": in.ProfileImage,
	} {
		if v != "" {
			set[k] = v
		}
	}
	if len(set) == 0 {
		return s.Profile(ctx, idHex)
	}
	user, err := s.Users.Update(ctx, id, bson.M{"$set": set, "$currentDate": bson.M{"updatedAt": true}})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("user", idHex)
	}
	return user, err
}

// Follow records actor -> target on both documents.
func (s *UserService) Follow(ctx context.Context, actorHex, targetHex string) (bool, error) {
	return s.setFollow(ctx, actorHex, targetHex, true)
}

func (s *UserService) Unfollow(ctx context.Context, actorHex, targetHex string) (bool, error) {
	return s.setFollow(ctx, actorHex, targetHex, false)
}

func (s *UserService) setFollow(ctx context.Context, actorHex, targetHex string, follow bool) (bool, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return false, err
	}
	target, err := parseID(targetHex, "user")
	if err != nil {
		return false, err
	}
	if actor == target {
		return false, apperror.Declined("cannot follow yourself")
	}
	if _, err := s.Users.FindOne(ctx, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperror.NotFound("user", targetHex)
		}
		return false, err
	}

	op := "$addToSet"
	if !follow {
		op = "$pull"
	}
	if _, err := s.Users.Update(ctx, actor, bson.M{op: bson.M{"following": target}}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperror.NotFound("user", actorHex)
		}
		return false, err
	}
	if _, err := s.Users.Update(ctx, target, bson.M{op: bson.M{"followers": actor}}); err != nil {
		// First write landed; report and surface the inconsistency.
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"actor": actorHex, "target": targetHex}).Error("follow relation half-applied")
		}
		return false, err
	}
	return true, nil
}
