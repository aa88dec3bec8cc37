package handlers_test

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sabtech/whatsgate-backend/internal/models"
)

// memStore backs the HTTP tests with an in-memory implementation of the
// store interfaces.
type memStore struct {
	mu        sync.Mutex
	users     []*models.User
	instances []*models.Instance
	messages  []*models.Message
	webhooks  []*models.Webhook
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) findUserLocked(email, phone string) *models.User {
	for _, u := range m.users {
		if email != "" && u.Email == email {
			return u
		}
		if phone != "" && u.Phone == phone {
			return u
		}
	}
	return nil
}

func (m *memStore) UpsertOTP(ctx context.Context, email, phone, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUserLocked(email, phone)
	if u == nil {
		u = &models.User{
			ID:           primitive.NewObjectID(),
			Email:        email,
			Phone:        phone,
			AccessTokens: []string{},
			CreatedAt:    time.Now().UTC(),
		}
		m.users = append(m.users, u)
	}
	u.OTPCode = code
	expires := expiresAt
	u.OTPExpiresAt = &expires
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) FindByIdentifier(ctx context.Context, email, phone string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUserLocked(email, phone)
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) FindByAccessToken(ctx context.Context, token string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		for _, t := range u.AccessTokens {
			if t == token {
				cp := *u
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (m *memStore) ConsumeOTP(ctx context.Context, userID primitive.ObjectID, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == userID {
			u.OTPCode = ""
			u.OTPExpiresAt = nil
			u.AccessTokens = append(u.AccessTokens, accessToken)
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}

func (m *memStore) InsertInstance(ctx context.Context, inst *models.Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst.ID = primitive.NewObjectID()
	inst.CreatedAt = time.Now().UTC()
	cp := *inst
	m.instances = append(m.instances, &cp)
	return nil
}

func (m *memStore) FindByInstanceID(ctx context.Context, instanceID string) (*models.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.instances {
		if i.InstanceID == instanceID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOwned(ctx context.Context, instanceID, userID string) (*models.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.instances {
		if i.InstanceID == instanceID && i.UserID == userID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListByUser(ctx context.Context, userID string) ([]models.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Instance
	for _, i := range m.instances {
		if i.UserID == userID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *memStore) MarkAuthenticated(ctx context.Context, instanceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.instances {
		if i.InstanceID == instanceID {
			i.IsAuthenticated = true
		}
	}
	return nil
}

func (m *memStore) InsertMessage(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	cp := *msg
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *memStore) FindByMessageID(ctx context.Context, messageID string) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.MessageID == messageID {
			cp := *msg
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertWebhook(ctx context.Context, hook *models.Webhook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	hook.ID = primitive.NewObjectID()
	hook.CreatedAt = time.Now().UTC()
	cp := *hook
	m.webhooks = append(m.webhooks, &cp)
	return nil
}

func (m *memStore) FindSubscribed(ctx context.Context, instanceID, event string) ([]models.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Webhook
	for _, h := range m.webhooks {
		if h.InstanceID != instanceID {
			continue
		}
		for _, e := range h.Events {
			if e == event {
				out = append(out, *h)
				break
			}
		}
	}
	return out, nil
}
