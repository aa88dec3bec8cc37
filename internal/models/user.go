package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the identity anchor for OTP login. A user is addressed by email OR
// phone; at least one is always set. OTP fields are transient and are cleared
// as soon as a verification succeeds.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`

	OTPCode      string     `bson:"otp_code,omitempty" json:"-"`
	OTPExpiresAt *time.Time `bson:"otp_expires_at,omitempty" json:"-"`

	// AccessTokens is append-only; tokens never expire and are never revoked
	// in this demo.
	AccessTokens []string `bson:"access_tokens" json:"-"`
}

// HasPendingOTP reports whether an OTP has been requested and not yet consumed.
func (u *User) HasPendingOTP() bool {
	return u.OTPCode != ""
}
