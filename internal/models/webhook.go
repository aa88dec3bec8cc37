package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gateway event names webhooks can subscribe to.
const (
	EventMessageStatus   = "message.status"
	EventMessageIncoming = "message.incoming"
)

// DefaultWebhookEvents is applied when a registration omits the event list.
func DefaultWebhookEvents() []string {
	return []string{EventMessageStatus, EventMessageIncoming}
}

// Webhook is a callback subscription for an instance. Registered once, never
// updated or deleted by this core.
type Webhook struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	InstanceID string   `bson:"instance_id" json:"instance_id"`
	URL        string   `bson:"url" json:"url"`
	Events     []string `bson:"events" json:"events"`
}
