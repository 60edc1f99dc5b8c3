package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	iss := NewIssuer([]byte("test-secret"))
	token, err := iss.Issue(FullPermission("alice"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := iss.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Username != "alice" || !claims.Spawn || !claims.Stop || !claims.StreamLog || !claims.Status {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	iss := NewIssuer([]byte("right"))
	token, err := iss.Issue(FullPermission("alice"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewIssuer([]byte("wrong")).Validate(token); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	iss := NewIssuer([]byte("secret"))
	claims := FullPermission("alice")
	claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * Expiration))
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-Expiration))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := iss.Validate(raw); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidatePartialPermission(t *testing.T) {
	iss := NewIssuer([]byte("secret"))
	token, err := iss.Issue(Claims{Username: "bob", Stop: true})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := iss.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Spawn {
		t.Fatal("spawn claim should not be granted")
	}
	if !claims.Stop {
		t.Fatal("stop claim should be granted")
	}
}
