// Package crypto provides password hashing and the signed session tokens
// used for authentication.
//
// Tokens carry no expiry: a token stays cryptographically valid forever and
// is considered live only while it remains in the owning user's token list.
// Logout revokes a single token by removing it from that list. This is a
// known weakness (a leaked token that is never logged out never expires).
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims represents the signed token payload: the user identity and the
// access scope the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id"`
	Access string `json:"access"`
}

// GenerateToken creates a signed token for the given user id and access
// scope. Each token carries a random id claim, so successive calls for the
// same user produce distinct tokens and a user can hold one live token per
// session; revoking one never touches the others.
func GenerateToken(userID, access, secret string) (string, error) {
	jti := make([]byte, 16)
	if _, err := rand.Read(jti); err != nil {
		return "", fmt.Errorf("generating token id: %w", err)
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       hex.EncodeToString(jti),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Access: access,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a token string, returning the claims if
// valid. Malformed tokens, signature mismatches and decode errors all
// collapse into ErrInvalidToken; callers treat it as "unauthenticated",
// never as a fault.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
