package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewVerificationToken generates a cryptographically random 64-character hex
// token for single-use email verification links.
func NewVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
