package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the account domain. Passwords are stored
// as bcrypt hashes. Follower relations are reference-by-identifier; the
// service layer keeps both sides consistent.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"password" json:"-"`
	FirstName    string               `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string               `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Gender       string               `bson:"gender,omitempty" json:"gender,omitempty"`
	Phone        string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string               `bson:"address,omitempty" json:"address,omitempty"`
	Bio          string               `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage string               `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Followers    []primitive.ObjectID `bson:"followers" json:"followers"`
	Following    []primitive.ObjectID `bson:"following" json:"following"`
	IsAdmin      bool                 `bson:"isAdmin" json:"isAdmin"`
	IsVerified   bool                 `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NewUser creates an account pending OTP verification.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) HexID() string { return u.ID.Hex() }

// IsFollowing reports whether u already follows the given user.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}
