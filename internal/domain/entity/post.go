package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a user publication embedding item image references by filename.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content      string             `bson:"content" json:"content"`
	Author       primitive.ObjectID `bson:"author" json:"author"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	CommentCount int                `bson:"commentCount" json:"commentCount"`
	LikeCount    int                `bson:"likeCount" json:"likeCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

func NewPost(author primitive.ObjectID, content string, images []string) *Post {
	return &Post{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Author:    author,
		Images:    images,
		CreatedAt: time.Now().UTC(),
	}
}

func (p *Post) OwnedBy(actor primitive.ObjectID) bool { return p.Author == actor }
