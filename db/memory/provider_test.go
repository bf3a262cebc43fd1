package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
)

func TestFinalVerificationOnlyOnPending(t *testing.T) {
	p := NewSeededProvider()
	ctx := context.Background()

	technician, err := p.FinalVerification(ctx, SeedAwaitingTechnician, types.DecisionReject, "blurry document")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if technician.VerificationStatus != types.VerificationRejected {
		t.Fatalf("unexpected status %s", technician.VerificationStatus)
	}
	if technician.FirebaseKYCData.AdminNotes != "blurry document" {
		t.Fatalf("notes not recorded: %+v", technician.FirebaseKYCData)
	}

	var invalid *db.InvalidStateError
	if _, err := p.FinalVerification(ctx, SeedAwaitingTechnician, types.DecisionApprove, ""); !errors.As(err, &invalid) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	var notFound *db.NotFoundError
	if _, err := p.FinalVerification(ctx, "missing", types.DecisionApprove, ""); !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	p := NewSeededProvider()
	ctx := context.Background()

	err := p.CreateCategory(ctx, types.Category{ID: "cat-ac", Name: "Air conditioning"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var duplicate *db.DuplicateIDError
	if err := p.CreateCategory(ctx, types.Category{ID: "cat-ac", Name: "Again"}); !errors.As(err, &duplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	category, err := p.GetCategory(ctx, SeedPlumbingCategory)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if category.TechnicianCount != 2 {
		t.Fatalf("expected 2 plumbing technicians, got %d", category.TechnicianCount)
	}

	if err := p.DeleteCategory(ctx, "cat-ac"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	categories, _ := p.GetAllCategories(ctx)
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories after delete, got %d", len(categories))
	}
}

func TestUpdatesReturnCopies(t *testing.T) {
	p := NewSeededProvider()
	ctx := context.Background()

	active := false
	user, err := p.UpdateUser(ctx, SeedCustomerID, types.UserUpdate{IsActive: &active})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	user.Username = "mutated"

	stored, _ := p.GetUser(ctx, SeedCustomerID)
	if stored.Username != "chioma" || stored.IsActive {
		t.Fatalf("unexpected stored user %+v", stored)
	}

	category := "missing"
	var notFound *db.NotFoundError
	if _, err := p.UpdateTechnician(ctx, SeedPendingTechnician, types.TechnicianUpdate{CategoryID: &category}); !errors.As(err, &notFound) {
		t.Fatalf("expected unknown category error, got %v", err)
	}
}

func TestReturnedRecordsDoNotShareNestedData(t *testing.T) {
	p := NewSeededProvider()
	ctx := context.Background()

	before, err := p.GetTechnician(ctx, SeedAwaitingTechnician)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	all, err := p.GetAllTechnicians(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}

	if _, err := p.FinalVerification(ctx, SeedAwaitingTechnician, types.DecisionReject, "document expired"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if before.FirebaseKYCData.AdminNotes != "" {
		t.Fatalf("earlier copy changed by a later write: %q", before.FirebaseKYCData.AdminNotes)
	}
	for _, technician := range all {
		if technician.FirebaseKYCData != nil && technician.FirebaseKYCData.AdminNotes == "document expired" {
			t.Fatalf("listed copy changed by a later write")
		}
	}

	before.Category.Name = "mutated"
	before.FirebaseKYCData.DocumentURLs[0] = "mutated"
	stored, _ := p.GetTechnician(ctx, SeedAwaitingTechnician)
	if stored.Category.Name == "mutated" || stored.FirebaseKYCData.DocumentURLs[0] == "mutated" {
		t.Fatalf("caller mutation reached the stored record: %+v", stored)
	}

	appointment, err := p.GetAppointment(ctx, SeedAppointmentID)
	if err != nil {
		t.Fatalf("appointment: %v", err)
	}
	appointment.Customer.Username = "mutated"
	appointment.Technician.Username = "mutated"
	storedAppointment, _ := p.GetAppointment(ctx, SeedAppointmentID)
	if storedAppointment.Customer.Username == "mutated" || storedAppointment.Technician.Username == "mutated" {
		t.Fatalf("caller mutation reached the stored appointment")
	}

	payments, err := p.GetAllPayments(ctx)
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	payments[0].Customer.Username = "mutated"
	storedPayment, _ := p.GetPayment(ctx, payments[0].ID)
	if storedPayment.Customer.Username == "mutated" {
		t.Fatalf("caller mutation reached the stored payment")
	}
}
