package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/techipro/konnect-admin/types"
)

// PendingQuery filters the pending review listing
type PendingQuery struct {
	Page   int
	Limit  int
	Status string
}

// Statistics returns the KYC counters
func (s *Service) Statistics(ctx context.Context) (*types.KYCStatistics, error) {
	var stats types.KYCStatistics
	if err := s.call(ctx, getRequest("/kyc-admin/kyc-statistics", nil), &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// CheckAccess probes an admin-only endpoint to confirm the session
// carries administrator privileges
func (s *Service) CheckAccess(ctx context.Context) error {
	_, err := s.Statistics(ctx)
	return err
}

// PendingReviews lists technicians waiting for a final decision
func (s *Service) PendingReviews(ctx context.Context, query PendingQuery) (*types.TechnicianPage, error) {
	params := pageParams(query.Page, query.Limit, DefaultPendingLimit)
	setIf(params, "status", query.Status)

	var page types.TechnicianPage
	if err := s.call(ctx, getRequest("/kyc-admin/technicians/pending-review", params), &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// RecentSubmissions returns the newest n pending submissions
func (s *Service) RecentSubmissions(ctx context.Context, n int) ([]types.Technician, error) {
	if n < 1 {
		n = 5
	}

	page, err := s.PendingReviews(ctx, PendingQuery{Page: 1, Limit: n})
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// FindPendingTechnician looks a technician up among the first
// PendingScanLimit pending submissions; the API has no direct lookup
func (s *Service) FindPendingTechnician(ctx context.Context, id string) (*types.Technician, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewValidationError("technician id", "cannot be empty")
	}

	page, err := s.PendingReviews(ctx, PendingQuery{Page: 1, Limit: PendingScanLimit})
	if err != nil {
		return nil, err
	}

	for i := range page.Items {
		if page.Items[i].ID == id {
			return &page.Items[i], nil
		}
	}

	return nil, NewNotFoundError("pending technician", id)
}

// FinalVerification approves or rejects a technician. Rejections must carry notes.
func (s *Service) FinalVerification(ctx context.Context, id string, decision types.Decision, notes string) (*types.FinalVerificationResult, error) {
	escaped, err := segment("technician id", id)
	if err != nil {
		return nil, err
	}
	if !decision.Valid() {
		return nil, NewValidationError("decision", "must be 'approve' or 'reject'")
	}

	notes = strings.TrimSpace(notes)
	if decision == types.DecisionReject && notes == "" {
		return nil, NewValidationError("notes", "a rejection reason is required")
	}

	req := jsonRequest(http.MethodPost, "/kyc-admin/technicians/"+escaped+"/final-verification",
		types.FinalVerificationRequest{Decision: decision, AdminNotes: notes})

	var result types.FinalVerificationResult
	if err := s.call(ctx, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// TechnicianKYCStatus returns the KYC state of one technician
func (s *Service) TechnicianKYCStatus(ctx context.Context, id string) (*types.KYCStatus, error) {
	escaped, err := segment("technician id", id)
	if err != nil {
		return nil, err
	}

	var status types.KYCStatus
	if err := s.call(ctx, getRequest("/technicians/"+escaped+"/kyc-status", nil), &status); err != nil {
		return nil, err
	}

	return &status, nil
}
