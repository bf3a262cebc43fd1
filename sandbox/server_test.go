package sandbox

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/techipro/konnect-admin/admin"
	"github.com/techipro/konnect-admin/auth"
	"github.com/techipro/konnect-admin/client"
	"github.com/techipro/konnect-admin/db/memory"
	"github.com/techipro/konnect-admin/session"
	"github.com/techipro/konnect-admin/types"
)

type harness struct {
	server    *Server
	http      *httptest.Server
	sess      *session.Session
	service   *admin.Service
	redirects int
	denied    []string
	adminTok  string
	userTok   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	h.server = NewServer(memory.NewSeededProvider(),
		auth.NewJWTManagerWithSecret([]byte("sandbox-test-secret"), time.Hour), zerolog.Nop())
	h.http = httptest.NewServer(h.server.Routes())
	t.Cleanup(h.http.Close)

	var err error
	h.adminTok, h.userTok, err = h.server.DemoTokens(context.Background())
	if err != nil {
		t.Fatalf("demo tokens: %v", err)
	}

	h.sess = session.New(session.NewMemoryStore())
	c, err := client.New(h.sess, client.Options{
		BaseURL:   h.http.URL + BasePath,
		Navigator: client.NavigatorFunc(func(client.Outcome) { h.redirects++ }),
		Indicator: client.IndicatorFunc(func(path string) { h.denied = append(h.denied, path) }),
	})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	h.service = admin.New(c)
	return h
}

func (h *harness) login(t *testing.T, token string) {
	t.Helper()
	if err := h.sess.Login(context.Background(), token); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestHealthIsPublic(t *testing.T) {
	h := newHarness(t)
	res, err := http.Get(h.http.URL + BasePath + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
}

func TestAdminFlowAgainstSandbox(t *testing.T) {
	h := newHarness(t)
	h.login(t, h.adminTok)
	ctx := context.Background()

	stats, err := h.service.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.Pending != 1 || stats.AwaitingAdminReview != 1 || stats.AdminApproved != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	pending, err := h.service.PendingReviews(ctx, admin.PendingQuery{Status: types.FirebaseKYCVerified})
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending.Items) != 1 || pending.Items[0].ID != memory.SeedAwaitingTechnician {
		t.Fatalf("unexpected pending page %+v", pending)
	}

	result, err := h.service.FinalVerification(ctx, memory.SeedAwaitingTechnician, types.DecisionApprove, "looks good")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Technician == nil || result.Technician.VerificationStatus != types.VerificationVerified {
		t.Fatalf("unexpected verification result %+v", result)
	}

	_, err = h.service.FinalVerification(ctx, memory.SeedAwaitingTechnician, types.DecisionApprove, "")
	var apiErr *admin.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict on second verification, got %v", err)
	}

	status, err := h.service.TechnicianKYCStatus(ctx, memory.SeedAwaitingTechnician)
	if err != nil {
		t.Fatalf("kyc status: %v", err)
	}
	if status.VerificationStatus != types.VerificationVerified {
		t.Fatalf("unexpected kyc status %+v", status)
	}

	if h.redirects != 0 || len(h.denied) != 0 {
		t.Fatalf("no effects expected for an admin session")
	}
}

func TestCategoryAndSettingsRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.login(t, h.adminTok)
	ctx := context.Background()

	created, err := h.service.CreateCategory(ctx, types.CategoryInput{Name: "Carpentry", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Name != "Carpentry" {
		t.Fatalf("unexpected category %+v", created)
	}

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}

	if err := h.service.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = h.service.GetCategory(ctx, created.ID)
	var apiErr *admin.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %v", err)
	}

	settings, err := h.service.GetSettings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	settings.MaintenanceMode = true
	updated, err := h.service.UpdateSettings(ctx, *settings)
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if !updated.MaintenanceMode {
		t.Fatalf("settings not updated: %+v", updated)
	}
}

func TestListingsAndSystemEndpoints(t *testing.T) {
	h := newHarness(t)
	h.login(t, h.adminTok)
	ctx := context.Background()

	users, err := h.service.ListUsers(ctx, admin.UserQuery{Role: types.RoleUser})
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if users.Total != 2 {
		t.Fatalf("expected 2 USER accounts, got %d", users.Total)
	}

	technicians, err := h.service.ListTechnicians(ctx, admin.TechnicianQuery{Search: "segun"})
	if err != nil {
		t.Fatalf("technicians: %v", err)
	}
	if len(technicians.Items) != 1 {
		t.Fatalf("expected one match, got %+v", technicians.Items)
	}

	appointments, err := h.service.ListAppointments(ctx, types.AppointmentCompleted)
	if err != nil {
		t.Fatalf("appointments: %v", err)
	}
	if len(appointments.Items) != 1 {
		t.Fatalf("expected one completed appointment, got %d", len(appointments.Items))
	}

	payments, err := h.service.ListPayments(ctx, "")
	if err != nil || len(payments.Items) != 2 {
		t.Fatalf("payments: %v %+v", err, payments)
	}

	services, err := h.service.ListServices(ctx)
	if err != nil || len(services.Items) != 2 {
		t.Fatalf("services: %v %+v", err, services)
	}

	health, err := h.service.SystemHealth(ctx)
	if err != nil || !health.Healthy() {
		t.Fatalf("health: %v %+v", err, health)
	}

	summary, err := h.service.AnalyticsSummary(ctx, "7d")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Period != "7d" || len(summary.TopCategories) == 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	_, err = h.service.AppointmentAnalytics(ctx, "forever")
	var apiErr *admin.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad period, got %v", err)
	}

	if _, err := h.service.DashboardStats(ctx); err != nil {
		t.Fatalf("legacy stats: %v", err)
	}
}

func TestNonAdminIsForbidden(t *testing.T) {
	h := newHarness(t)
	h.login(t, h.userTok)

	err := h.service.CheckAccess(context.Background())
	var denied *admin.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if len(h.denied) != 1 || h.redirects != 0 {
		t.Fatalf("expected one indicator and no redirect, got %v / %d", h.denied, h.redirects)
	}
	if token, ok, _ := h.sess.Token(context.Background()); !ok || token != h.userTok {
		t.Fatalf("403 must keep the session")
	}
}

func TestForeignTokenIsUnauthorized(t *testing.T) {
	h := newHarness(t)
	other := auth.NewJWTManagerWithSecret([]byte("someone-else"), time.Hour)
	forged, err := other.Issue(types.User{ID: memory.SeedAdminID, Role: types.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	h.login(t, forged)

	_, err = h.service.Overview(context.Background())
	if err != admin.ErrSessionInvalid {
		t.Fatalf("expected invalid session, got %v", err)
	}
	if _, ok, _ := h.sess.Token(context.Background()); ok {
		t.Fatalf("rejected token should be cleared")
	}
	if h.redirects != 1 {
		t.Fatalf("expected one redirect, got %d", h.redirects)
	}
}

func TestServerFromEnvUsesMemoryByDefault(t *testing.T) {
	os.Unsetenv("SANDBOX_MONGO_URI")
	os.Unsetenv("SANDBOX_JWT_SECRET")

	server, err := NewServerFromEnv(zerolog.Nop())
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	if _, ok := server.provider.(*memory.Provider); !ok {
		t.Fatalf("expected the in-memory provider, got %T", server.provider)
	}

	ctx := context.Background()
	if err := server.Connect(ctx); err != nil {
		t.Fatalf("connect should be a no-op for memory data: %v", err)
	}
	if _, _, err := server.DemoTokens(ctx); err != nil {
		t.Fatalf("demo tokens: %v", err)
	}
	if err := server.Disconnect(ctx); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
}

func TestRequestsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	server := NewServer(memory.NewSeededProvider(),
		auth.NewJWTManagerWithSecret([]byte("sandbox-test-secret"), time.Hour), zerolog.New(&logs))
	api := httptest.NewServer(server.Routes())
	defer api.Close()

	res, err := http.Get(api.URL + BasePath + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	res.Body.Close()

	if !bytes.Contains(logs.Bytes(), []byte(BasePath+"/health")) {
		t.Fatalf("expected the request to be logged, got %q", logs.String())
	}
}
