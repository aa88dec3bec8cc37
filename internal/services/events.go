package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// InstanceEvent is the payload broadcast over Redis and WebSocket for an
// instance's live event stream.
type InstanceEvent struct {
	Event      string                 `json:"event"`
	InstanceID string                 `json:"instance_id"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp,omitempty"`
}

// EventPublisher mirrors gateway events onto a live stream. Publishing is as
// best-effort as webhook delivery; callers discard the error where dropping
// events is acceptable.
type EventPublisher interface {
	PublishInstanceEvent(ctx context.Context, event InstanceEvent) error
}

// EventChannel is the Redis pub/sub channel carrying one instance's events.
func EventChannel(instanceID string) string {
	return "events:instance:" + instanceID
}

// RedisEventBus publishes instance events over Redis pub/sub; the WebSocket
// event stream subscribes to the per-instance channel.
type RedisEventBus struct {
	client *redis.Client
}

func NewRedisEventBus(client *redis.Client) *RedisEventBus {
	return &RedisEventBus{client: client}
}

func (b *RedisEventBus) PublishInstanceEvent(ctx context.Context, event InstanceEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, EventChannel(event.InstanceID), data).Err()
}
