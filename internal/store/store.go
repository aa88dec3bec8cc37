// Package store owns persistence for the gateway's entities. Services receive
// the store interfaces at construction; nothing reads the database through
// package globals. Lookups that find nothing return (nil, nil) so callers can
// map "missing" to their own error taxonomy.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sabtech/whatsgate-backend/internal/models"
)

// UserStore persists users and their OTP/token state.
type UserStore interface {
	// UpsertOTP atomically creates-or-updates the user matching the identifier
	// (email or phone, exactly one set) with a fresh OTP code and expiry.
	UpsertOTP(ctx context.Context, email, phone, code string, expiresAt time.Time) error

	FindByIdentifier(ctx context.Context, email, phone string) (*models.User, error)
	FindByAccessToken(ctx context.Context, token string) (*models.User, error)

	// ConsumeOTP atomically clears the user's pending OTP and appends a new
	// bearer token to the access token list.
	ConsumeOTP(ctx context.Context, userID primitive.ObjectID, accessToken string) error
}

// InstanceStore persists messaging instances.
type InstanceStore interface {
	InsertInstance(ctx context.Context, inst *models.Instance) error
	FindByInstanceID(ctx context.Context, instanceID string) (*models.Instance, error)
	FindOwned(ctx context.Context, instanceID, userID string) (*models.Instance, error)
	ListByUser(ctx context.Context, userID string) ([]models.Instance, error)
	MarkAuthenticated(ctx context.Context, instanceID string) error
}

// MessageStore persists outbound messages. Messages are immutable once written.
type MessageStore interface {
	InsertMessage(ctx context.Context, msg *models.Message) error
	FindByMessageID(ctx context.Context, messageID string) (*models.Message, error)
}

// WebhookStore persists webhook subscriptions.
type WebhookStore interface {
	InsertWebhook(ctx context.Context, hook *models.Webhook) error
	// FindSubscribed returns the instance's webhooks whose event set contains
	// the given event.
	FindSubscribed(ctx context.Context, instanceID, event string) ([]models.Webhook, error)
}
