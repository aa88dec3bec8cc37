package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instance is a logical messaging endpoint owned by exactly one user.
// InstanceID and the secret token are immutable after creation; the token is
// stored as an Argon2id hash and the plaintext is returned only once, at
// creation time.
type Instance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	UserID     string `bson:"user_id" json:"user_id"`
	Name       string `bson:"name" json:"name"`
	InstanceID string `bson:"instance_id" json:"instance_id"`
	TokenHash  string `bson:"token_hash" json:"-"`

	// IsAuthenticated simulates the device QR scan: it starts false and flips
	// to true exactly once. There is no deauthentication path.
	IsAuthenticated bool `bson:"is_authenticated" json:"is_authenticated"`
}
