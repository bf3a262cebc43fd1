package session

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Unix()
	token := signed(t, jwt.MapClaims{
		"sub":      "u-1",
		"username": "ada",
		"email":    "ada@example.com",
		"role":     "ADMIN",
		"exp":      exp,
	})

	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.DisplayName() != "ada" || claims.Role != "ADMIN" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	expiry, ok := claims.Expiry()
	if !ok || expiry.Unix() != exp {
		t.Fatalf("expected expiry %d, got %v (%v)", exp, expiry.Unix(), ok)
	}
	if err := claims.Valid(); err != nil {
		t.Fatalf("expected unexpired claims, got %v", err)
	}
}

func TestParseClaimsDisplayFallbacks(t *testing.T) {
	claims, err := ParseClaims(signed(t, jwt.MapClaims{"email": "ops@example.com"}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.DisplayName() != "ops@example.com" {
		t.Fatalf("expected email fallback, got %q", claims.DisplayName())
	}

	claims, err = ParseClaims(signed(t, jwt.MapClaims{"sub": "x"}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.DisplayName() != "Admin" {
		t.Fatalf("expected Admin fallback, got %q", claims.DisplayName())
	}
	if _, ok := claims.Expiry(); ok {
		t.Fatalf("expected no expiry")
	}
}

func TestParseClaimsExpired(t *testing.T) {
	claims, err := ParseClaims(signed(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := claims.Valid(); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseClaimsOpaqueToken(t *testing.T) {
	if _, err := ParseClaims("abc123"); err == nil {
		t.Fatalf("expected error for a non-JWT token")
	}
}
