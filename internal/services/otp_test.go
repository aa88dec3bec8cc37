package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRequestOTPRequiresIdentifier(t *testing.T) {
	svc := NewOTPService(newMemStore())
	if _, _, err := svc.RequestOTP(context.Background(), "", ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRequestThenVerify(t *testing.T) {
	store := newMemStore()
	svc := NewOTPService(store)
	ctx := context.Background()

	code, expiresAt, err := svc.RequestOTP(ctx, "user@example.com", "")
	if err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if len(code) != OTPLength {
		t.Fatalf("expected %d-digit code, got %q", OTPLength, code)
	}
	if until := time.Until(expiresAt); until < 9*time.Minute || until > 11*time.Minute {
		t.Fatalf("expiry not ~10 minutes out: %v", expiresAt)
	}

	token, err := svc.VerifyOTP(ctx, "user@example.com", "", code)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if len(token) != AccessTokenLength {
		t.Fatalf("expected %d-char token, got %d", AccessTokenLength, len(token))
	}

	user, err := store.FindByAccessToken(ctx, token)
	if err != nil || user == nil {
		t.Fatalf("issued token not resolvable: user=%v err=%v", user, err)
	}
	if user.HasPendingOTP() {
		t.Fatal("OTP not cleared after successful verification")
	}
}

func TestVerifyOTPWithoutRequest(t *testing.T) {
	svc := NewOTPService(newMemStore())
	if _, err := svc.VerifyOTP(context.Background(), "user@example.com", "", "123456"); !errors.Is(err, ErrNotRequested) {
		t.Fatalf("expected ErrNotRequested, got %v", err)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc := NewOTPService(newMemStore())
	ctx := context.Background()

	code, _, err := svc.RequestOTP(ctx, "", "+15550001111")
	if err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := svc.VerifyOTP(ctx, "", "+15550001111", wrong); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc := NewOTPService(newMemStore())
	ctx := context.Background()

	code, _, err := svc.RequestOTP(ctx, "user@example.com", "")
	if err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}

	// Jump past the expiry; the correct code must fail with Expired, never
	// with InvalidCode.
	svc.now = func() time.Time { return time.Now().Add(OTPTTL + time.Minute) }
	if _, err := svc.VerifyOTP(ctx, "user@example.com", "", code); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyOTPConsumedCode(t *testing.T) {
	svc := NewOTPService(newMemStore())
	ctx := context.Background()

	code, _, err := svc.RequestOTP(ctx, "user@example.com", "")
	if err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if _, err := svc.VerifyOTP(ctx, "user@example.com", "", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	// The code was cleared on first success.
	if _, err := svc.VerifyOTP(ctx, "user@example.com", "", code); !errors.Is(err, ErrNotRequested) {
		t.Fatalf("expected ErrNotRequested on reuse, got %v", err)
	}
}

func TestTokensAccumulate(t *testing.T) {
	store := newMemStore()
	svc := NewOTPService(store)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		code, _, err := svc.RequestOTP(ctx, "user@example.com", "")
		if err != nil {
			t.Fatalf("RequestOTP: %v", err)
		}
		token, err := svc.VerifyOTP(ctx, "user@example.com", "", code)
		if err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if seen[token] {
			t.Fatalf("token %q issued twice", token)
		}
		seen[token] = true
	}

	user, err := store.FindByIdentifier(ctx, "user@example.com", "")
	if err != nil || user == nil {
		t.Fatalf("user lookup: user=%v err=%v", user, err)
	}
	// Old tokens stay valid: the list is append-only.
	if len(user.AccessTokens) != 3 {
		t.Fatalf("expected 3 accumulated tokens, got %d", len(user.AccessTokens))
	}
}
