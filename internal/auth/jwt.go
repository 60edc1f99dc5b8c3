package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiration is the lifetime of every issued token, matching the reference
// implementation's fixed 15-minute JWT_EXPIRATION.
const Expiration = 15 * time.Minute

// Issuer signs and validates Claims with a single HS256 secret.
//
// The secret is a server-configured value with no rotation or external key
// management; this mirrors the reference implementation's hardcoded
// JWT_SECRET and is explicitly a development convenience, not a
// production-grade credential store. See internal/config for how the secret
// is supplied.
type Issuer struct {
	secret []byte
}

// NewIssuer returns an Issuer signing with secret.
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Issue signs claims, stamping a fresh expiry Expiration from now.
func (i *Issuer) Issue(claims Claims) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(Expiration))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses and verifies raw, returning its claims if the signature
// and expiry both check out.
func (i *Issuer) Validate(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
