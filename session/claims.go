package session

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrTokenExpired is returned by Claims.Valid once exp has passed
var ErrTokenExpired = errors.New("token is expired")

// Claims is the subset of the API's token payload the console displays.
// The console cannot verify the signature; only the API can.
type Claims struct {
	Subject   string `json:"sub,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Valid implements jwt.Claims and only checks expiry
func (c *Claims) Valid() error {
	if c.ExpiresAt != 0 && time.Now().Unix() >= c.ExpiresAt {
		return ErrTokenExpired
	}

	return nil
}

// DisplayName is the best human-readable identity in the token
func (c *Claims) DisplayName() string {
	switch {
	case c.Username != "":
		return c.Username
	case c.Email != "":
		return c.Email
	default:
		return "Admin"
	}
}

// Expiry returns the expiry time, or false if the token carries none
func (c *Claims) Expiry() (time.Time, bool) {
	if c.ExpiresAt == 0 {
		return time.Time{}, false
	}

	return time.Unix(c.ExpiresAt, 0), true
}

// ParseClaims decodes the payload of a JWT without verifying its signature
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	return claims, nil
}
