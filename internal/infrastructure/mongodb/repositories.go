package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
)

// Collection names are fixed; one repository per entity family.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return NewCollection[entity.User](db, "users")
}

func NewItemRepository(db *mongo.Database) repository.ItemRepository {
	return NewCollection[entity.Item](db, "items")
}

func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return NewCollection[entity.Category](db, "categories")
}

func NewPostRepository(db *mongo.Database) repository.PostRepository {
	return NewCollection[entity.Post](db, "posts")
}

func NewImageRepository(db *mongo.Database) repository.ImageRepository {
	return NewCollection[entity.Image](db, "images")
}

func NewOtpRepository(db *mongo.Database) repository.OtpRepository {
	return NewCollection[entity.Otp](db, "otps")
}

func NewFavoriteRepository(db *mongo.Database) repository.FavoriteRepository {
	return NewCollection[entity.Favorite](db, "favorites")
}

var _ repository.UserRepository = (*Collection[entity.User])(nil)
