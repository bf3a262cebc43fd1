package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/jwtauth"

	"github.com/techipro/konnect-admin/env"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// DefaultTokenTTL is used when SANDBOX_TOKEN_TTL is not set
const DefaultTokenTTL = time.Hour

// JWTManager contains the secret loaded from the environment
type JWTManager struct {
	Auth   *jwtauth.JWTAuth
	secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// Claims contains the data the API embeds in an admin session token
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// NewJWTManager creates a new JWTManager
// and loads the secret from the environment
func NewJWTManager() (*JWTManager, error) {
	jwtSecretStr, err := env.GetEnv("sandbox JWT secret key", "SANDBOX_JWT_SECRET")
	if err != nil {
		return nil, err
	}

	// Parse the string into bytes
	encoding := base64.StdEncoding.WithPadding(base64.StdPadding)
	secretBytes, err := encoding.DecodeString(strings.TrimSpace(jwtSecretStr))
	if err != nil {
		return nil, err
	}

	ttl, err := env.GetDurationEnv("sandbox token lifetime", "SANDBOX_TOKEN_TTL")
	if env.IsMissing(err) {
		ttl = DefaultTokenTTL
	} else if err != nil {
		return nil, err
	}

	return NewJWTManagerWithSecret(secretBytes, ttl), nil
}

// NewJWTManagerWithSecret creates a JWTManager for an explicit secret
func NewJWTManagerWithSecret(secret []byte, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	// Create the instance of the auth used for middleware
	tokenAuth := jwtauth.New("HS256", secret, nil)

	return &JWTManager{
		Auth:   tokenAuth,
		secret: secret,
		TTL:    ttl,
		now:    time.Now,
	}
}

// IssueJWT creates a new, unsigned JWT for the given account
func (m *JWTManager) IssueJWT(user types.User) *jwt.Token {
	now := m.now()
	claims := &Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.TTL).Unix(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
}

// SignToken signs a JWT using the internal secret
func (m *JWTManager) SignToken(token *jwt.Token) (string, error) {
	return token.SignedString(m.secret)
}

// Issue creates and signs a token for the given account
func (m *JWTManager) Issue(user types.User) (string, error) {
	return m.SignToken(m.IssueJWT(user))
}

// Authenticated handles seeking, verifying, and validating JWT tokens,
// sending 401 responses upon failure
func (m *JWTManager) Authenticated() func(http.Handler) http.Handler {
	verifier := jwtauth.Verify(m.Auth, jwtauth.TokenFromHeader)
	return func(next http.Handler) http.Handler {
		// Compose the verifier and authenticator functions
		return verifier(authenticator(next))
	}
}

// AdminAuthenticated ensures that an authenticated token carries the
// ADMIN role, sending 403 responses otherwise
func AdminAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := FromContext(r.Context())
		if err != nil {
			unauthorized(w)
			return
		}

		if role, _ := claims["role"].(string); role != types.RoleAdmin {
			forbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FromContext extracts the token and claims from the context
func FromContext(ctx context.Context) (*jwt.Token, jwt.MapClaims, error) {
	token, _ := ctx.Value(jwtauth.TokenCtxKey).(*jwt.Token)
	err, _ := ctx.Value(jwtauth.ErrorCtxKey).(error)

	var claims jwt.MapClaims
	if token != nil {
		if tokenClaims, ok := token.Claims.(jwt.MapClaims); ok {
			claims = tokenClaims
		} else if err == nil {
			err = errors.New("invalid claim type")
		}
	}

	return token, claims, err
}

// authenticator sends an error response if token validation failed
func authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := FromContext(r.Context())
		if err != nil {
			unauthorized(w)
			return
		}

		if token == nil || !token.Valid {
			unauthorized(w)
			return
		}

		// Token is authenticated, pass it through
		next.ServeHTTP(w, r)
	})
}

// unauthorized sends a response message in the case that validation fails
func unauthorized(w http.ResponseWriter) {
	util.ErrorWithCode(w, errors.New("user is not authorized to access resource"),
		http.StatusUnauthorized)
}

// forbidden sends a response message when the caller lacks the admin role
func forbidden(w http.ResponseWriter) {
	util.ErrorWithCode(w, errors.New("admin access required"),
		http.StatusForbidden)
}
