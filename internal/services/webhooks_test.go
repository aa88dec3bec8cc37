package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sabtech/whatsgate-backend/internal/models"
)

func TestRegisterWebhook(t *testing.T) {
	store := newMemStore()
	instances := NewInstanceService(store)
	webhooks := NewWebhookService(store, store)
	ctx := context.Background()

	created, err := instances.Create(ctx, "owner-1", "phone")
	if err != nil {
		t.Fatal(err)
	}

	hook, err := webhooks.Register(ctx, created.InstanceID, created.Token,
		"https://example.com/hook", []string{models.EventMessageStatus})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if hook.ID.IsZero() {
		t.Fatal("webhook id not assigned")
	}

	subs, err := store.FindSubscribed(ctx, created.InstanceID, models.EventMessageStatus)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].URL != "https://example.com/hook" {
		t.Fatalf("unexpected subscribers: %+v", subs)
	}
	// Not subscribed to events it never asked for.
	subs, _ = store.FindSubscribed(ctx, created.InstanceID, models.EventMessageIncoming)
	if len(subs) != 0 {
		t.Fatalf("webhook leaked onto unsubscribed event: %+v", subs)
	}
}

func TestRegisterWebhookDefaultEvents(t *testing.T) {
	store := newMemStore()
	instances := NewInstanceService(store)
	webhooks := NewWebhookService(store, store)
	ctx := context.Background()

	created, _ := instances.Create(ctx, "owner-1", "phone")

	hook, err := webhooks.Register(ctx, created.InstanceID, created.Token,
		"https://example.com/hook", nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !reflect.DeepEqual(hook.Events, models.DefaultWebhookEvents()) {
		t.Fatalf("expected default events, got %v", hook.Events)
	}
}

func TestRegisterWebhookRequiresURL(t *testing.T) {
	store := newMemStore()
	instances := NewInstanceService(store)
	webhooks := NewWebhookService(store, store)
	ctx := context.Background()

	created, _ := instances.Create(ctx, "owner-1", "phone")

	if _, err := webhooks.Register(ctx, created.InstanceID, created.Token, "", nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRegisterWebhookBadCredentials(t *testing.T) {
	store := newMemStore()
	instances := NewInstanceService(store)
	webhooks := NewWebhookService(store, store)
	ctx := context.Background()

	created, _ := instances.Create(ctx, "owner-1", "phone")

	if _, err := webhooks.Register(ctx, created.InstanceID, "wrong", "https://example.com/hook", nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := webhooks.Register(ctx, "no-such-id", created.Token, "https://example.com/hook", nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
