// Package auth issues and verifies the stateless session tokens carried by
// authenticated requests. Tokens are HS256-signed JWTs; no session state is
// kept server-side, so a token stays valid until it expires.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialnet/internal/common"
)

// Claims is the set of identity fields embedded in a signed session token.
// They are trusted as of issuance time: a user renamed after login keeps the
// old values until the next login.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GenerateToken signs the identity claims with HS256 and the given secret.
// The registered claims are set here; callers fill only the identity fields.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns the embedded claims. Any
// failure (bad signature, malformed token, wrong algorithm, expiry) collapses
// to common.ErrInvalidToken so callers cannot learn why a token was rejected.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
