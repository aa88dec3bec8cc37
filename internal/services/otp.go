package services

import (
	"context"
	"time"

	"github.com/sabtech/whatsgate-backend/internal/store"
	"github.com/sabtech/whatsgate-backend/pkg/utils"
)

const (
	// OTPLength is the number of digits in a one-time code.
	OTPLength = 6
	// OTPTTL is how long a code stays valid after issuance.
	OTPTTL = 10 * time.Minute
	// AccessTokenLength is the length of issued bearer tokens.
	AccessTokenLength = 40
)

// OTPService issues and verifies one-time codes bound to an email or phone
// identifier, exchanging a verified code for a bearer token.
type OTPService struct {
	users store.UserStore
	now   func() time.Time
}

func NewOTPService(users store.UserStore) *OTPService {
	return &OTPService{users: users, now: time.Now}
}

// RequestOTP generates a fresh code for the identifier and upserts the user
// record (creating it on first contact). Exactly one of email/phone must be
// set. The code is returned directly to the caller: this is a demo-mode
// shortcut standing in for an out-of-band email/SMS channel.
func (s *OTPService) RequestOTP(ctx context.Context, email, phone string) (string, time.Time, error) {
	if err := validateIdentifier(email, phone); err != nil {
		return "", time.Time{}, err
	}

	code, err := utils.RandomDigits(OTPLength)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := s.now().UTC().Add(OTPTTL)

	if err := s.users.UpsertOTP(ctx, email, phone, code, expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return code, expiresAt, nil
}

// VerifyOTP checks the submitted code and, on success, clears the pending OTP
// and appends a new bearer token to the user's token list. The code match is
// exact; there is no fuzzy matching, rate limiting or attempt counter.
func (s *OTPService) VerifyOTP(ctx context.Context, email, phone, code string) (string, error) {
	if err := validateIdentifier(email, phone); err != nil {
		return "", err
	}

	user, err := s.users.FindByIdentifier(ctx, email, phone)
	if err != nil {
		return "", err
	}
	if user == nil || !user.HasPendingOTP() {
		return "", ErrNotRequested
	}

	if user.OTPCode != code {
		return "", ErrInvalidCode
	}

	if user.OTPExpiresAt != nil && s.now().UTC().After(*user.OTPExpiresAt) {
		return "", ErrExpired
	}

	token, err := utils.RandomToken(AccessTokenLength)
	if err != nil {
		return "", err
	}

	if err := s.users.ConsumeOTP(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

func validateIdentifier(email, phone string) error {
	if email == "" && phone == "" {
		return ErrInvalidRequest
	}
	return nil
}
