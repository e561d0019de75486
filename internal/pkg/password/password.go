package password

import "golang.org/x/crypto/bcrypt"

// Hash generates a salted bcrypt hash of the plaintext password. Two calls
// with the same input yield different hashes; Verify matches either.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison
// is constant-time inside bcrypt.
func Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
