package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet avoids 0/O and 1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateReferralCode returns a short upper-case share code. Uniqueness is
// enforced by the store at persistence time, not here.
func CreateReferralCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	code := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code), nil
}

func StringPtr(s string) *string {
	return &s
}

func UintPtr(u uint) *uint {
	return &u
}
