package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
)

func TestResponseCodeFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{db.NewNotFoundError("user", "u1"), http.StatusNotFound},
		{pkgerrors.Wrap(db.NewNotFoundError("user", "u1"), "lookup"), http.StatusNotFound},
		{db.NewDuplicateIDError("c1"), http.StatusConflict},
		{db.NewInvalidStateError("t1", "VERIFIED", "verify technician"), http.StatusConflict},
		{&json.SyntaxError{}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := ResponseCodeFromError(c.err); got != c.want {
			t.Errorf("%v: got %d, want %d", c.err, got, c.want)
		}
	}
}

func TestErrorWithCodeBody(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorWithCode(rec, errors.New("nope"), http.StatusForbidden)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Message != "nope" {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}

func TestPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?page=2&limit=3", nil)
	start, end, info := Page(req, 7, 10)
	if start != 3 || end != 6 || info.TotalPages != 3 || info.Page != 2 || info.Limit != 3 {
		t.Fatalf("unexpected page %d..%d %+v", start, end, info)
	}

	req = httptest.NewRequest(http.MethodGet, "/x?page=9&limit=abc", nil)
	start, end, info = Page(req, 7, 10)
	if start != 7 || end != 7 || info.Limit != 10 {
		t.Fatalf("unexpected page %d..%d %+v", start, end, info)
	}
}

func TestPageHugeValues(t *testing.T) {
	cases := []struct {
		query      string
		start, end int
		totalPages int
	}{
		{"page=9223372036854775807&limit=10", 5, 5, 1},
		{"page=1&limit=9223372036854775807", 0, 5, 1},
		{"page=2&limit=9223372036854775807", 5, 5, 1},
		{"page=9223372036854775807&limit=9223372036854775807", 5, 5, 1},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/x?"+c.query, nil)
		start, end, info := Page(req, 5, 10)
		if start != c.start || end != c.end || info.TotalPages != c.totalPages {
			t.Errorf("%s: unexpected page %d..%d %+v", c.query, start, end, info)
		}

		items := []int{1, 2, 3, 4, 5}
		_ = items[start:end]
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	start, end, info := Page(req, 0, 10)
	if start != 0 || end != 0 || info.TotalPages != 0 {
		t.Fatalf("unexpected empty page %d..%d %+v", start, end, info)
	}
}
