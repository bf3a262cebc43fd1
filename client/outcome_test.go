package client

import (
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		hasToken bool
		status   int
		want     Outcome
	}{
		{false, 0, NoSession},
		{false, 200, NoSession},
		{true, 200, Success},
		{true, 204, Success},
		{true, 401, Unauthorized},
		{true, 403, Forbidden},
		{true, 404, Failed},
		{true, 500, Failed},
		{true, 302, Failed},
	}

	for _, c := range cases {
		if got := Classify(c.hasToken, c.status); got != c.want {
			t.Errorf("Classify(%v, %d) = %s, want %s", c.hasToken, c.status, got, c.want)
		}
	}
}

func TestDecide(t *testing.T) {
	cases := map[Outcome]Decision{
		NoSession:        {Outcome: NoSession, Redirect: true},
		Unauthorized:     {Outcome: Unauthorized, ClearToken: true, Redirect: true},
		Forbidden:        {Outcome: Forbidden, ShowAccessDenied: true, ReturnResponse: true},
		Success:          {Outcome: Success, ReturnResponse: true},
		Failed:           {Outcome: Failed, ReturnResponse: true},
		TransportFailure: {Outcome: TransportFailure},
	}

	for outcome, want := range cases {
		if got := Decide(outcome); got != want {
			t.Errorf("Decide(%s) = %+v, want %+v", outcome, got, want)
		}
	}
}

func TestForbiddenNeverClearsOrRedirects(t *testing.T) {
	d := Decide(Classify(true, http.StatusForbidden))
	if d.ClearToken || d.Redirect {
		t.Fatalf("403 must keep the session: %+v", d)
	}
}

func TestMergeHeaders(t *testing.T) {
	caller := http.Header{}
	caller.Set("X-Trace", "abc")
	caller.Set("Content-Type", "text/plain")
	caller.Set("Authorization", "Bearer forged")
	caller["authorization"] = []string{"Basic Zm9vOmJhcg=="}

	merged := MergeHeaders("abc123", caller)

	if got := merged.Values("Authorization"); len(got) != 1 || got[0] != "Bearer abc123" {
		t.Fatalf("unexpected Authorization: %q", got)
	}
	if got := merged.Get("Content-Type"); got != "text/plain" {
		t.Fatalf("caller Content-Type should win over default, got %q", got)
	}
	if got := merged.Get("X-Trace"); got != "abc" {
		t.Fatalf("caller header lost, got %q", got)
	}
	if _, ok := merged["authorization"]; ok {
		t.Fatalf("non-canonical Authorization key leaked through")
	}
}

func TestMergeHeadersDefaults(t *testing.T) {
	merged := MergeHeaders("tok", nil)
	if got := merged.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}
	if got := merged.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", got)
	}
}

func TestMergeHeadersKeepsEverySpelling(t *testing.T) {
	caller := http.Header{
		"X-A":    []string{"upper"},
		"x-a":    []string{"lower"},
		"accept": []string{"text/csv"},
	}

	for i := 0; i < 20; i++ {
		merged := MergeHeaders("tok", caller)
		got := merged.Values("X-A")
		if len(got) != 2 || got[0] != "upper" || got[1] != "lower" {
			t.Fatalf("expected both spellings in key order, got %q", got)
		}
		if accept := merged.Values("Accept"); len(accept) != 1 || accept[0] != "text/csv" {
			t.Fatalf("caller Accept should replace the default, got %q", accept)
		}
		if _, ok := merged["x-a"]; ok {
			t.Fatalf("non-canonical key leaked through")
		}
	}
}
