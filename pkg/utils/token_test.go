package utils

import "testing"

func TestHashAndVerifyInstanceToken(t *testing.T) {
	hash, err := HashInstanceToken("super-secret-token")
	if err != nil {
		t.Fatalf("HashInstanceToken: %v", err)
	}
	if hash == "super-secret-token" {
		t.Fatal("token stored in plaintext")
	}

	ok, err := VerifyInstanceToken("super-secret-token", hash)
	if err != nil {
		t.Fatalf("VerifyInstanceToken: %v", err)
	}
	if !ok {
		t.Fatal("correct token did not verify")
	}
}

func TestVerifyInstanceTokenMismatch(t *testing.T) {
	hash, err := HashInstanceToken("super-secret-token")
	if err != nil {
		t.Fatalf("HashInstanceToken: %v", err)
	}

	// A near-miss must fail the same way as a wild guess.
	for _, wrong := range []string{"super-secret-tokeN", "super-secret-toke", "", "x"} {
		ok, err := VerifyInstanceToken(wrong, hash)
		if err != nil {
			t.Fatalf("VerifyInstanceToken(%q): %v", wrong, err)
		}
		if ok {
			t.Fatalf("wrong token %q verified", wrong)
		}
	}
}

func TestVerifyInstanceTokenMalformedHash(t *testing.T) {
	if _, err := VerifyInstanceToken("token", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestHashInstanceTokenSalted(t *testing.T) {
	h1, err := HashInstanceToken("token")
	if err != nil {
		t.Fatalf("HashInstanceToken: %v", err)
	}
	h2, err := HashInstanceToken("token")
	if err != nil {
		t.Fatalf("HashInstanceToken: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}
