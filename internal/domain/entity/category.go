package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is part of a two-level hierarchy: top categories and sub
// categories, told apart by the Top flag. Mutated only by admin commands.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Label     string             `bson:"label" json:"label"`
	Top       bool               `bson:"top" json:"top"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func NewCategory(name, label string, top bool) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Label:     label,
		Top:       top,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
