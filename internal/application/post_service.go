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

type PostService struct {
	Posts  repository.PostRepository
	Logger *logrus.Logger
}

func NewPostService(posts repository.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

func (s *PostService) List(ctx context.Context, pageIndex, pageSize string) ([]entity.Post, error) {
	page := pageFrom(pageIndex, pageSize)
	page.Sort = bson.D{{Key: "createdAt", Value: -1}}
	return s.Posts.Find(ctx, bson.M{}, page)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorHex, pageIndex, pageSize string) ([]entity.Post, error) {
	author, err := parseID(authorHex, "user")
	if err != nil {
		return nil, err
	}
	page := pageFrom(pageIndex, pageSize)
	page.Sort = bson.D{{Key: "createdAt", Value: -1}}
	return s.Posts.Find(ctx, bson.M{"author": author}, page)
}

func (s *PostService) Get(ctx context.Context, idHex string) (*entity.Post, error) {
	id, err := parseID(idHex, "post")
	if err != nil {
		return nil, err
	}
	post, err := s.Posts.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("post", idHex)
	}
	return post, err
}

func (s *PostService) Create(ctx context.Context, actorHex, content string, images []string) (*entity.Post, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return nil, err
	}
	post := entity.NewPost(actor, content, images)
	if err := s.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post after checking the caller owns it.
func (s *PostService) Delete(ctx context.Context, actorHex, idHex string) (bool, error) {
	actor, err := parseActorID(actorHex)
	if err != nil {
		return false, err
	}
	id, err := parseID(idHex, "post")
	if err != nil {
		return false, err
	}
	post, err := s.Posts.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperror.NotFound("post", idHex)
		}
		return false, err
	}
	if !post.OwnedBy(actor) {
		return false, apperror.Forbidden("you do not own this post")
	}
	if _, err := s.Posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperror.NotFound("post", idHex)
		}
		return false, err
	}
	return true, nil
}
