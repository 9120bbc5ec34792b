package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image records an uploaded binary. Other entities reference it by the
// generated filename; there is no strong foreign key.
type Image struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename  string             `bson:"filename" json:"filename"`
	Mimetype  string             `bson:"mimetype" json:"mimetype"`
	Path      string             `bson:"path" json:"path"`
	Provider  string             `bson:"provider" json:"provider"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func NewImage(filename, mimetype, path, provider string) *Image {
	return &Image{
		ID:        primitive.NewObjectID(),
		Filename:  filename,
		Mimetype:  mimetype,
		Path:      path,
		Provider:  provider,
		CreatedAt: time.Now().UTC(),
	}
}
