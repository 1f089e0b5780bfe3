package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueMockTokenWithoutSecret(t *testing.T) {
	issuer := NewTokenIssuer("", time.Hour)

	a, err := issuer.Issue("volunteer@example.com", "volunteer")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	b, _ := issuer.Issue("volunteer@example.com", "volunteer")

	if !strings.HasPrefix(a, mockTokenPrefix) {
		t.Errorf("token %q lacks mock prefix", a)
	}
	if a == b {
		t.Error("tokens should be unique per issue")
	}
}

func TestIssueSignedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	tokenStr, err := issuer.Issue("responder@example.com", "first_responder")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("ParseWithClaims: %v", err)
	}
	if claims.Subject != "responder@example.com" || claims.Role != "first_responder" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token id should be set")
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v", claims.ExpiresAt.Time)
	}
}
