package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pinshelf/pinshelf-api/config"
	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/infrastructure/mongodb"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// Seeds the admin account from ADMIN_* env vars. Idempotent: an existing
// account with the same email is updated, not duplicated.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := entity.NewUser(cfg.AdminUsername, cfg.AdminEmail, hash)
	admin.IsAdmin = true
	admin.IsVerified = true

	res, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": cfg.AdminEmail},
		bson.M{
			"$set": bson.M{
				"username":   admin.Username,
				"password":   admin.Password,
				"isAdmin":    true,
				"isVerified": true,
				"updatedAt":  time.Now().UTC(),
			},
			"$setOnInsert": bson.M{
				"_id":       admin.ID,
				"email":     admin.Email,
				"followers": admin.Followers,
				"following": admin.Following,
				"createdAt": admin.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	if res.UpsertedCount > 0 {
		fmt.Printf("seeded admin: username=%s email=%s\n", admin.Username, admin.Email)
	} else {
		fmt.Printf("updated admin: username=%s email=%s\n", admin.Username, admin.Email)
	}
}
