package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types.
const (
	TypeText        = "text"
	TypeImage       = "image"
	TypeDocument    = "document"
	TypeAudio       = "audio"
	TypeVideo       = "video"
	TypeInteractive = "interactive"
)

// Message statuses. Status is decided once at creation time: "sent" when the
// owning instance is authenticated, otherwise "failed". "delivered" and
// "read" are reachable in the schema but are left for a future status worker.
const (
	StatusQueued    = "queued"
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
	StatusFailed    = "failed"
)

// MessageTypes enumerates the accepted content types.
var MessageTypes = map[string]bool{
	TypeText:        true,
	TypeImage:       true,
	TypeDocument:    true,
	TypeAudio:       true,
	TypeVideo:       true,
	TypeInteractive: true,
}

// MessageContent is the type-tagged payload variant: exactly one field is
// populated, selected by the message type (text → Text, media types →
// MediaURL, interactive → Interactive).
type MessageContent struct {
	Text        string `bson:"text,omitempty" json:"text,omitempty"`
	MediaURL    string `bson:"media_url,omitempty" json:"media_url,omitempty"`
	Interactive bson.M `bson:"interactive,omitempty" json:"interactive,omitempty"`
}

// FieldFor reports whether the content field matching msgType is populated.
func (c MessageContent) FieldFor(msgType string) bool {
	switch msgType {
	case TypeText:
		return c.Text != ""
	case TypeImage, TypeDocument, TypeAudio, TypeVideo:
		return c.MediaURL != ""
	case TypeInteractive:
		return len(c.Interactive) > 0
	}
	return false
}

// Message is one outbound send attempt. Immutable after creation.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	InstanceID string         `bson:"instance_id" json:"instance_id"`
	To         string         `bson:"to" json:"to"`
	Type       string         `bson:"type" json:"type"`
	Content    MessageContent `bson:"content" json:"content"`

	Status string `bson:"status" json:"status"`
	// Error is non-empty iff Status is "failed".
	Error string `bson:"error,omitempty" json:"error,omitempty"`

	// MessageID is the public identifier used for status polling.
	MessageID string `bson:"message_id" json:"message_id"`
}
