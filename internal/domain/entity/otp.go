package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OtpPurpose string

const (
	OtpPurposeLogin OtpPurpose = "login"
	OtpPurposeReset OtpPurpose = "reset"
)

// Otp is a one-time verification code. One is created per login/reset
// attempt, consumed on successful verification, and never reused.
type Otp struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"code" json:"-"`
	Purpose   OtpPurpose         `bson:"purpose" json:"purpose"`
	Consumed  bool               `bson:"consumed" json:"consumed"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func NewOtp(email, code string, purpose OtpPurpose, ttl time.Duration) *Otp {
	now := time.Now().UTC()
	return &Otp{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func (o *Otp) Expired(now time.Time) bool { return now.After(o.ExpiresAt) }

// Usable reports whether the code can still be redeemed.
func (o *Otp) Usable(now time.Time) bool { return !o.Consumed && !o.Expired(now) }
