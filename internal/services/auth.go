package services

import (
	"context"

	"github.com/sabtech/whatsgate-backend/internal/models"
	"github.com/sabtech/whatsgate-backend/internal/store"
)

// AuthService resolves bearer tokens to users. Tokens have no expiry in this
// design; a token is valid for as long as it sits in the user's token list.
type AuthService struct {
	users store.UserStore
}

func NewAuthService(users store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// UserFromToken returns the user whose access token list contains the token.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
