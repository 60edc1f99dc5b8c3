// Package auth issues and validates the bearer JWTs gating every RPC except
// IssueJwt itself.
package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT payload. Each boolean grants the matching RPC: a token
// can authenticate a user without granting every capability they have.
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	Spawn     bool   `json:"spawn"`
	Stop      bool   `json:"stop"`
	StreamLog bool   `json:"stream_log"`
	Status    bool   `json:"status"`
}

// FullPermission returns claims granting every capability to username.
// IssueJwt does not use it; it signs exactly the capabilities requested.
func FullPermission(username string) Claims {
	return Claims{
		Username:  username,
		Spawn:     true,
		Stop:      true,
		StreamLog: true,
		Status:    true,
	}
}
