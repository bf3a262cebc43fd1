package admin

import (
	"testing"

	"github.com/techipro/konnect-admin/types"
)

func TestMatchTechnicians(t *testing.T) {
	technicians := []types.Technician{
		{ID: "1", Username: "Adaeze", Email: "ada@example.com", Category: &types.CategoryRef{Name: "Plumbing"}},
		{ID: "2", Username: "bolu", Email: "bolu@example.com", Category: &types.CategoryRef{Name: "Electrical"}},
	}

	if got := MatchTechnicians(technicians, "plmb"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected category match, got %+v", got)
	}
	if got := MatchTechnicians(technicians, "BOLU"); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected case-insensitive match, got %+v", got)
	}
	if got := MatchTechnicians(technicians, ""); len(got) != 2 {
		t.Fatalf("empty pattern should keep everything")
	}
	if got := MatchTechnicians(technicians, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestMatchUsers(t *testing.T) {
	users := []types.User{{ID: "1", Username: "admin", Email: "root@konnect.io"}, {ID: "2", Username: "chidi"}}
	if got := MatchUsers(users, "konnect"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected email match, got %+v", got)
	}
}
