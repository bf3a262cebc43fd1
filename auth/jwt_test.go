package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"

	"github.com/techipro/konnect-admin/session"
	"github.com/techipro/konnect-admin/types"
)

func newTestRouter(m *JWTManager) http.Handler {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(m.Authenticated())
		r.Get("/any", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(AdminAuthenticated).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return router
}

func statusFor(t *testing.T, handler http.Handler, path string, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthenticatedAndAdmin(t *testing.T) {
	m := NewJWTManagerWithSecret([]byte("test-secret"), time.Hour)
	router := newTestRouter(m)

	adminToken, err := m.Issue(types.User{ID: "u1", Username: "root", Role: types.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	userToken, err := m.Issue(types.User{ID: "u2", Username: "chioma", Role: types.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := NewJWTManagerWithSecret([]byte("another-secret"), time.Hour)
	forged, _ := other.Issue(types.User{ID: "u1", Role: types.RoleAdmin})

	cases := []struct {
		path  string
		token string
		want  int
	}{
		{"/any", "", http.StatusUnauthorized},
		{"/any", "garbage", http.StatusUnauthorized},
		{"/any", forged, http.StatusUnauthorized},
		{"/any", userToken, http.StatusNoContent},
		{"/admin", userToken, http.StatusForbidden},
		{"/admin", adminToken, http.StatusNoContent},
		{"/admin", "", http.StatusUnauthorized},
	}

	for _, c := range cases {
		if got := statusFor(t, router, c.path, c.token); got != c.want {
			t.Errorf("%s with token %q: got %d, want %d", c.path, c.token, got, c.want)
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManagerWithSecret([]byte("test-secret"), time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue(types.User{ID: "u1", Role: types.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if got := statusFor(t, newTestRouter(m), "/admin", token); got != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", got)
	}
}

func TestIssuedClaimsReadableByConsole(t *testing.T) {
	m := NewJWTManagerWithSecret([]byte("test-secret"), 30*time.Minute)
	token, err := m.Issue(types.User{ID: "u1", Username: "root", Email: "root@techipro.io", Role: types.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := session.ParseClaims(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != types.RoleAdmin || claims.DisplayName() != "root" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if expiry, ok := claims.Expiry(); !ok || time.Until(expiry) > 31*time.Minute {
		t.Fatalf("unexpected expiry %v", expiry)
	}
}
