package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	digits       = "0123456789"
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomDigits returns a numeric code of the given length (e.g. a 6-digit OTP)
// drawn from a cryptographically secure source.
func RandomDigits(length int) (string, error) {
	return randomFrom(digits, length)
}

// RandomToken returns an alphanumeric token of the given length drawn from a
// cryptographically secure source. Used for bearer tokens, instance ids,
// instance secrets and message ids.
func RandomToken(length int) (string, error) {
	return randomFrom(alphanumeric, length)
}

func randomFrom(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
