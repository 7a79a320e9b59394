// Package cryptox implements the one-way password transform used by the
// registration and login flows.
package cryptox

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes plaintext with bcrypt at the default cost. The digest
// embeds a random salt, so successive calls on the same input produce
// different digests. The transform is not reversible.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext is the input that produced digest.
// bcrypt's comparison does not short-circuit on the first mismatching byte.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
