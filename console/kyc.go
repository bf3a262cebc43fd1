package console

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/techipro/konnect-admin/admin"
	"github.com/techipro/konnect-admin/types"
)

func (c *Console) runDashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	recent := fs.Int("recent", 5, "number of recent submissions to show")
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	overview, err := c.service.Overview(ctx)
	if err != nil {
		return err
	}
	stats, err := c.service.Statistics(ctx)
	if err != nil {
		return err
	}
	submissions, err := c.service.RecentSubmissions(ctx, *recent)
	if err != nil {
		return err
	}

	view := struct {
		Overview          *types.Overview      `json:"overview"`
		KYC               *types.KYCStatistics `json:"kyc"`
		RecentSubmissions []types.Technician   `json:"recentSubmissions"`
	}{overview, stats, submissions}

	return c.output(view, func(w io.Writer) {
		row(w, "Total users", overview.TotalUsers)
		row(w, "Active technicians", overview.ActiveTechnicians)
		row(w, "Pending verifications", overview.PendingVerifications)
		row(w, "Total orders", overview.TotalOrders)
		fmt.Fprintln(w)
		writeKYCStatistics(w, stats)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent submissions")
		writeTechnicians(w, submissions)
	})
}

func (c *Console) runKYC(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("kyc", args, "stats", "pending", "show", "approve", "reject", "status")
	if err != nil {
		return err
	}

	switch sub {
	case "stats":
		return c.kycStats(ctx, rest)
	case "pending":
		return c.kycPending(ctx, rest)
	case "show":
		return c.kycShow(ctx, rest)
	case "approve":
		return c.kycDecide(ctx, types.DecisionApprove, rest)
	case "reject":
		return c.kycDecide(ctx, types.DecisionReject, rest)
	default:
		return c.kycStatus(ctx, rest)
	}
}

func (c *Console) kycStats(ctx context.Context, args []string) error {
	if err := c.parseNone(flag.NewFlagSet("kyc stats", flag.ContinueOnError), args); err != nil {
		return err
	}

	stats, err := c.service.Statistics(ctx)
	if err != nil {
		return err
	}

	return c.output(stats, func(w io.Writer) {
		writeKYCStatistics(w, stats)
	})
}

func (c *Console) kycPending(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("kyc pending", flag.ContinueOnError)
	page := fs.Int("page", admin.DefaultPage, "page number")
	limit := fs.Int("limit", admin.DefaultPendingLimit, "page size")
	status := fs.String("status", "", "identity check status (PENDING, FIREBASE_VERIFIED, FIREBASE_REJECTED)")
	match := fs.String("match", "", "fuzzy filter on username, email or category")
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	result, err := c.service.PendingReviews(ctx, admin.PendingQuery{Page: *page, Limit: *limit, Status: *status})
	if err != nil {
		return err
	}
	result.Items = admin.MatchTechnicians(result.Items, *match)

	return c.output(result, func(w io.Writer) {
		writeTechnicians(w, result.Items)
		pageFooter(w, result.PageInfo, len(result.Items))
	})
}

func (c *Console) kycShow(ctx context.Context, args []string) error {
	id, err := c.parseID(flag.NewFlagSet("kyc show", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	technician, err := c.service.FindPendingTechnician(ctx, id)
	if err != nil {
		return err
	}

	return c.output(technician, func(w io.Writer) {
		writeTechnician(w, technician)
	})
}

func (c *Console) kycDecide(ctx context.Context, decision types.Decision, args []string) error {
	fs := flag.NewFlagSet("kyc "+string(decision), flag.ContinueOnError)
	notes := fs.String("notes", "", "admin notes (required when rejecting)")
	id, err := c.parseID(fs, args)
	if err != nil {
		return err
	}

	result, err := c.service.FinalVerification(ctx, id, decision, *notes)
	if err != nil {
		return err
	}

	return c.output(result, func(w io.Writer) {
		fmt.Fprintln(w, orDash(result.Message))
		if result.Technician != nil {
			row(w, "Technician", result.Technician.Username)
			row(w, "Verification", result.Technician.VerificationStatus)
		}
	})
}

func (c *Console) kycStatus(ctx context.Context, args []string) error {
	id, err := c.parseID(flag.NewFlagSet("kyc status", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	status, err := c.service.TechnicianKYCStatus(ctx, id)
	if err != nil {
		return err
	}

	return c.output(status, func(w io.Writer) {
		row(w, "Technician", status.TechnicianID)
		row(w, "Identity check", orDash(status.FirebaseKYCStatus))
		row(w, "Verification", orDash(status.VerificationStatus))
		if status.FirebaseKYCData != nil {
			row(w, "Confidence", fmt.Sprintf("%.0f%%", status.FirebaseKYCData.ConfidenceScore*100))
			row(w, "Admin notes", orDash(status.FirebaseKYCData.AdminNotes))
		}
		row(w, "Updated", ago(status.UpdatedAt))
	})
}

func writeKYCStatistics(w io.Writer, stats *types.KYCStatistics) {
	row(w, "Pending identity check", stats.Pending)
	row(w, "Identity verified", stats.FirebaseVerified)
	row(w, "Awaiting admin review", stats.AwaitingAdminReview)
	row(w, "Approved by admin", stats.AdminApproved)
}

func writeTechnicians(w io.Writer, technicians []types.Technician) {
	if len(technicians) == 0 {
		fmt.Fprintln(w, "No technicians found.")
		return
	}

	row(w, "ID", "USERNAME", "EMAIL", "CATEGORY", "IDENTITY", "VERIFICATION", "SUBMITTED")
	for _, technician := range technicians {
		row(w, technician.ID, technician.Username, orDash(technician.Email),
			categoryName(technician.Category), orDash(technician.FirebaseKYCStatus),
			orDash(technician.VerificationStatus), ago(technician.CreatedAt))
	}
}

func writeTechnician(w io.Writer, technician *types.Technician) {
	row(w, "ID", technician.ID)
	row(w, "Username", technician.Username)
	row(w, "Email", orDash(technician.Email))
	row(w, "Phone", orDash(technician.PhoneNumber))
	row(w, "Location", orDash(technician.Location))
	row(w, "Category", categoryName(technician.Category))
	row(w, "Identity check", orDash(technician.FirebaseKYCStatus))
	row(w, "Verification", orDash(technician.VerificationStatus))
	row(w, "Availability", orDash(technician.AvailabilityStatus))
	if data := technician.FirebaseKYCData; data != nil {
		row(w, "Confidence", fmt.Sprintf("%.0f%%", data.ConfidenceScore*100))
		if data.FaceMatch != nil {
			row(w, "Face match", yesNo(*data.FaceMatch))
		}
		row(w, "Document", orDash(data.DocumentType))
		for _, url := range data.DocumentURLs {
			row(w, "Document URL", url)
		}
		row(w, "Admin notes", orDash(data.AdminNotes))
	}
	row(w, "Submitted", ago(technician.CreatedAt))
}
