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

// CategoryService owns the category hierarchy. All mutations arrive through
// admin-authenticated commands; reads are public.
type CategoryService struct {
	Categories repository.CategoryRepository
	Logger     *logrus.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Categories: categories, Logger: logger}
}

type CategoryInput struct {
	Name  string
	Label string
	Top   bool
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	existing, err := s.Categories.FindOneBy(ctx, bson.M{"name": in.Name}, nil)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("category", in.Name)
	}
	cat := entity.NewCategory(in.Name, in.Label, in.Top)
	if err := s.Categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, idHex string, in CategoryInput) (bool, error) {
	id, err := parseID(idHex, "category")
	if err != nil {
		return false, err
	}
	_, err = s.Categories.Update(ctx, id, bson.M{"$set": bson.M{
		"name":  in.Name,
		"label": in.Label,
		"top":   in.Top,
	}, "$currentDate": bson.M{"updatedAt": true}})
	if errors.Is(err, repository.ErrNotFound) {
		return false, apperror.NotFound("category", idHex)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CategoryService) Delete(ctx context.Context, idHex string) (bool, error) {
	id, err := parseID(idHex, "category")
	if err != nil {
		return false, err
	}
	if _, err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperror.NotFound("category", idHex)
		}
		return false, err
	}
	return true, nil
}

func (s *CategoryService) List(ctx context.Context, pageIndex, pageSize string) ([]entity.Category, error) {
	page := pageFrom(pageIndex, pageSize)
	page.Sort = bson.D{{Key: "name", Value: 1}}
	return s.Categories.Find(ctx, bson.M{}, page)
}
