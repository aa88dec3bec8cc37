package services

import (
	"context"

	"github.com/sabtech/whatsgate-backend/internal/models"
	"github.com/sabtech/whatsgate-backend/internal/store"
	"github.com/sabtech/whatsgate-backend/pkg/utils"
)

const (
	// InstanceIDLength is the length of the public instance identifier.
	InstanceIDLength = 10
	// InstanceTokenLength is the length of the instance secret token.
	InstanceTokenLength = 32
)

// CreatedInstance carries the one-time creation response: the plaintext secret
// token is never retrievable again.
type CreatedInstance struct {
	ID              string `json:"id"`
	InstanceID      string `json:"instance_id"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// InstanceService is the registry of messaging instances.
type InstanceService struct {
	instances store.InstanceStore
}

func NewInstanceService(instances store.InstanceStore) *InstanceService {
	return &InstanceService{instances: instances}
}

// Create registers a new instance for the user. The secret token is hashed at
// rest; the plaintext is returned only here.
func (s *InstanceService) Create(ctx context.Context, userID, name string) (*CreatedInstance, error) {
	if name == "" {
		return nil, ErrInvalidRequest
	}

	instanceID, err := utils.RandomToken(InstanceIDLength)
	if err != nil {
		return nil, err
	}
	token, err := utils.RandomToken(InstanceTokenLength)
	if err != nil {
		return nil, err
	}
	tokenHash, err := utils.HashInstanceToken(token)
	if err != nil {
		return nil, err
	}

	inst := &models.Instance{
		UserID:          userID,
		Name:            name,
		InstanceID:      instanceID,
		TokenHash:       tokenHash,
		IsAuthenticated: false,
	}
	if err := s.instances.InsertInstance(ctx, inst); err != nil {
		return nil, err
	}

	return &CreatedInstance{
		ID:              inst.ID.Hex(),
		InstanceID:      instanceID,
		Token:           token,
		IsAuthenticated: false,
	}, nil
}

// List returns all instances owned by the user.
func (s *InstanceService) List(ctx context.Context, userID string) ([]models.Instance, error) {
	return s.instances.ListByUser(ctx, userID)
}

// VerifyCredentials resolves an instance by public id and secret token, for
// callers outside the send path (e.g. the live event stream).
func (s *InstanceService) VerifyCredentials(ctx context.Context, instanceID, token string) (*models.Instance, error) {
	return resolveInstance(ctx, s.instances, instanceID, token)
}

// Authenticate flips the instance's authenticated flag to true. This stands in
// for the device QR-scan handshake; the transition is one-way and idempotent.
func (s *InstanceService) Authenticate(ctx context.Context, userID, instanceID string) error {
	inst, err := s.instances.FindOwned(ctx, instanceID, userID)
	if err != nil {
		return err
	}
	if inst == nil {
		return ErrNotFound
	}
	return s.instances.MarkAuthenticated(ctx, instanceID)
}
