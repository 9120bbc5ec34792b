package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite marks an item as saved by a user. One document per (user, item).
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ItemID    primitive.ObjectID `bson:"itemId" json:"itemId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func NewFavorite(userID, itemID primitive.ObjectID) *Favorite {
	return &Favorite{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ItemID:    itemID,
		CreatedAt: time.Now().UTC(),
	}
}
