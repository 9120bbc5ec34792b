package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemImage references an uploaded image by generated filename, not by key.
type ItemImage struct {
	Filename string `bson:"filename" json:"filename"`
	Mimetype string `bson:"mimetype" json:"mimetype"`
}

// Item is a shared catalog entry. Deletion is a soft state transition that
// records the acting user; only the creator may trigger it (enforced in the
// service before the transition).
type Item struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	URLName       string              `bson:"urlName" json:"urlName"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	TopCategory   string              `bson:"topCategory" json:"topCategory"`
	SubCategories []string            `bson:"subCategories,omitempty" json:"subCategories,omitempty"`
	Image         ItemImage           `bson:"image" json:"image"`
	CreatedBy     primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	DeletedAt     *time.Time          `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	DeletedBy     *primitive.ObjectID `bson:"deletedBy,omitempty" json:"deletedBy,omitempty"`
}

// Stamp assigns identity and creation metadata before the first persist.
func (i *Item) Stamp(actor primitive.ObjectID) {
	i.ID = primitive.NewObjectID()
	i.CreatedBy = actor
	i.CreatedAt = time.Now().UTC()
}

// MarkDeleted records the deletion and its actor. The record stays in the
// store; listings filter on DeletedAt.
func (i *Item) MarkDeleted(actor primitive.ObjectID) {
	now := time.Now().UTC()
	i.DeletedAt = &now
	i.DeletedBy = &actor
}

func (i *Item) Deleted() bool { return i.DeletedAt != nil }

// OwnedBy reports whether actor created this item.
func (i *Item) OwnedBy(actor primitive.ObjectID) bool { return i.CreatedBy == actor }
