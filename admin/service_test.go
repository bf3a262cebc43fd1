package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/techipro/konnect-admin/client"
	"github.com/techipro/konnect-admin/types"
)

type fakeDoer struct {
	requests []client.Request
	result   *client.Result
	err      error
}

func (f *fakeDoer) Do(ctx context.Context, req client.Request) (*client.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakeDoer) last(t *testing.T) client.Request {
	t.Helper()
	if len(f.requests) == 0 {
		t.Fatalf("no request was issued")
	}
	return f.requests[len(f.requests)-1]
}

func ok(body string) *fakeDoer {
	return &fakeDoer{result: &client.Result{
		Outcome:  client.Success,
		Response: &client.Response{StatusCode: 200, Body: []byte(body)},
	}}
}

func withStatus(outcome client.Outcome, status int, body string) *fakeDoer {
	result := &client.Result{Outcome: outcome}
	if outcome == client.Forbidden || outcome == client.Failed {
		result.Response = &client.Response{StatusCode: status, Body: []byte(body)}
	}
	return &fakeDoer{result: result}
}

func TestStatistics(t *testing.T) {
	doer := ok(`{"pending":5,"adminApproved":2}`)
	stats, err := New(doer).Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.Pending != 5 || stats.AdminApproved != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if got := doer.last(t).Path; got != "/kyc-admin/kyc-statistics" {
		t.Fatalf("unexpected path %s", got)
	}
}

func TestOutcomesMapToErrors(t *testing.T) {
	cases := []struct {
		name  string
		doer  *fakeDoer
		check func(error) bool
	}{
		{"no session", withStatus(client.NoSession, 0, ""), func(err error) bool { return err == ErrNoSession }},
		{"unauthorized", withStatus(client.Unauthorized, 401, ""), func(err error) bool { return err == ErrSessionInvalid }},
		{"forbidden", withStatus(client.Forbidden, 403, `{"message":"Admin only"}`), func(err error) bool {
			var denied *AccessDeniedError
			return errors.As(err, &denied) && denied.Message == "Admin only"
		}},
		{"failed", withStatus(client.Failed, 500, `{"error":"db down"}`), func(err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode == 500 && apiErr.Message == "db down"
		}},
		{"transport", &fakeDoer{err: client.NewTransportError("GET", "/admin/overview", errors.New("refused"))}, func(err error) bool {
			return client.IsTransport(err)
		}},
	}

	for _, c := range cases {
		_, err := New(c.doer).Overview(context.Background())
		if err == nil || !c.check(err) {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
	}
}

func TestListingWithoutCollectionIsShapeError(t *testing.T) {
	for _, body := range []string{`{"total":0}`, `{"items":null}`, `null`, ``, `not json`} {
		_, err := New(ok(body)).PendingReviews(context.Background(), PendingQuery{})
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Errorf("body %q: expected ShapeError, got %v", body, err)
		}
	}

	page, err := New(ok(`{"items":[],"total":0}`)).PendingReviews(context.Background(), PendingQuery{})
	if err != nil {
		t.Fatalf("empty listing: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty listing")
	}
}

func TestCategoriesRequireCollection(t *testing.T) {
	_, err := New(ok(`{"items":[]}`)).ListCategories(context.Background())
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) || shapeErr.Field != "categories" {
		t.Fatalf("expected missing categories, got %v", err)
	}

	_, err = New(ok(`{}`)).GetSettings(context.Background())
	if !errors.As(err, &shapeErr) || shapeErr.Field != "settings" {
		t.Fatalf("expected missing settings, got %v", err)
	}
}

func TestPendingReviewsDefaults(t *testing.T) {
	doer := ok(`{"items":[]}`)
	New(doer).PendingReviews(context.Background(), PendingQuery{Status: " FIREBASE_VERIFIED "})

	query := doer.last(t).Query
	if query["page"] != "1" || query["limit"] != "20" || query["status"] != "FIREBASE_VERIFIED" {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestListUsersDropsShortSearch(t *testing.T) {
	doer := ok(`{"items":[]}`)
	service := New(doer)

	service.ListUsers(context.Background(), UserQuery{Search: "a", Role: types.RoleAdmin})
	query := doer.last(t).Query
	if _, present := query["search"]; present {
		t.Fatalf("single character search should be dropped: %v", query)
	}
	if query["role"] != "ADMIN" || query["limit"] != "10" {
		t.Fatalf("unexpected query %v", query)
	}

	service.ListUsers(context.Background(), UserQuery{Search: "jo", Page: 3, Limit: 50})
	query = doer.last(t).Query
	if query["search"] != "jo" || query["page"] != "3" || query["limit"] != "50" {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestFinalVerificationValidation(t *testing.T) {
	doer := ok(`{"message":"done"}`)
	service := New(doer)

	var validation *ValidationError
	if _, err := service.FinalVerification(context.Background(), "t1", types.DecisionReject, "  "); !errors.As(err, &validation) {
		t.Fatalf("reject without notes should fail validation, got %v", err)
	}
	if _, err := service.FinalVerification(context.Background(), "t1", "maybe", ""); !errors.As(err, &validation) {
		t.Fatalf("unknown decision should fail validation, got %v", err)
	}
	if _, err := service.FinalVerification(context.Background(), "", types.DecisionApprove, ""); !errors.As(err, &validation) {
		t.Fatalf("empty id should fail validation, got %v", err)
	}
	if len(doer.requests) != 0 {
		t.Fatalf("invalid input must not reach the API")
	}

	result, err := service.FinalVerification(context.Background(), "t1", types.DecisionApprove, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if result.Message != "done" {
		t.Fatalf("unexpected result %+v", result)
	}

	req := doer.last(t)
	if req.Method != "POST" || req.Path != "/kyc-admin/technicians/t1/final-verification" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	body, isBody := req.Body.(types.FinalVerificationRequest)
	if !isBody || body.Decision != types.DecisionApprove {
		t.Fatalf("unexpected body %#v", req.Body)
	}
}

func TestFindPendingTechnician(t *testing.T) {
	doer := ok(`{"items":[{"id":"a","username":"ada"},{"id":"b","username":"bo"}]}`)
	service := New(doer)

	technician, err := service.FindPendingTechnician(context.Background(), "b")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if technician.Username != "bo" {
		t.Fatalf("unexpected technician %+v", technician)
	}
	if doer.last(t).Query["limit"] != "100" {
		t.Fatalf("expected a 100 item scan, got %v", doer.last(t).Query)
	}

	var notFound *NotFoundError
	if _, err := service.FindPendingTechnician(context.Background(), "zz"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestIdentifiersAreEscaped(t *testing.T) {
	doer := ok(`{"id":"a b"}`)
	if _, err := New(doer).GetUser(context.Background(), "a b/c"); err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got := doer.last(t).Path; got != "/admin/users/a%20b%2Fc" {
		t.Fatalf("unexpected path %s", got)
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	doer := ok(`{"id":"c1","name":"Plumbing"}`)
	service := New(doer)

	var validation *ValidationError
	if _, err := service.CreateCategory(context.Background(), types.CategoryInput{Name: " "}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	category, err := service.CreateCategory(context.Background(), types.CategoryInput{Name: " Plumbing ", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if category.ID != "c1" {
		t.Fatalf("unexpected category %+v", category)
	}
	if body := doer.last(t).Body.(types.CategoryInput); body.Name != "Plumbing" {
		t.Fatalf("name should be trimmed, got %q", body.Name)
	}
}

func TestAnalyticsDefaultPeriod(t *testing.T) {
	doer := ok(`{"period":"30d"}`)
	if _, err := New(doer).AnalyticsSummary(context.Background(), ""); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if doer.last(t).Query["period"] != "30d" {
		t.Fatalf("unexpected query %v", doer.last(t).Query)
	}
}

func TestDeleteIgnoresBody(t *testing.T) {
	doer := ok(``)
	if err := New(doer).DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if req := doer.last(t); req.Method != "DELETE" || req.Path != "/admin/users/u1" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
}
