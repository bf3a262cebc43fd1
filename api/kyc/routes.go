package kyc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// DefaultPendingLimit is the page size of the pending review listing
const DefaultPendingLimit = 20

// Routes creates a new Chi router with all of the routes for the KYC review resource,
// at the root level
func Routes(technicianProvider db.TechnicianProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/kyc-statistics", Statistics(technicianProvider))
	router.Get("/technicians/pending-review", PendingReview(technicianProvider))
	router.Post("/technicians/{id}/final-verification", FinalVerification(technicianProvider))
	return router
}

// Statistics counts technicians by KYC stage
func Statistics(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technicians, err := technicianProvider.GetAllTechnicians(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		stats := types.KYCStatistics{}
		for _, technician := range technicians {
			switch technician.FirebaseKYCStatus {
			case types.FirebaseKYCPending:
				stats.Pending++
			case types.FirebaseKYCVerified:
				stats.FirebaseVerified++
				if technician.VerificationStatus == types.VerificationPending {
					stats.AwaitingAdminReview++
				}
			}
			if technician.VerificationStatus == types.VerificationVerified {
				stats.AdminApproved++
			}
		}

		render.JSON(w, r, stats)
	}
}

// PendingReview lists technicians that have no admin decision yet,
// optionally filtered by their identity check status
func PendingReview(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technicians, err := technicianProvider.GetAllTechnicians(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		pending := []types.Technician{}
		for _, technician := range technicians {
			if technician.VerificationStatus != types.VerificationPending {
				continue
			}
			if status != "" && !strings.EqualFold(technician.FirebaseKYCStatus, status) {
				continue
			}
			pending = append(pending, technician)
		}

		start, end, info := util.Page(r, len(pending), DefaultPendingLimit)
		render.JSON(w, r, types.TechnicianPage{
			Items:    pending[start:end],
			PageInfo: info,
		})
	}
}

// FinalVerification records the admin decision for a technician
func FinalVerification(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		var request types.FinalVerificationRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			util.Error(w, err)
			return
		}

		if !request.Decision.Valid() {
			util.BadRequest(w, "decision must be 'approve' or 'reject'")
			return
		}

		request.AdminNotes = strings.TrimSpace(request.AdminNotes)
		if request.Decision == types.DecisionReject && request.AdminNotes == "" {
			util.BadRequest(w, "adminNotes are required when rejecting")
			return
		}

		technician, err := technicianProvider.FinalVerification(r.Context(), id,
			request.Decision, request.AdminNotes)
		if err != nil {
			util.Error(w, err)
			return
		}

		message := "Technician approved"
		if request.Decision == types.DecisionReject {
			message = "Technician rejected"
		}

		render.JSON(w, r, types.FinalVerificationResult{
			Message:    message,
			Technician: technician,
		})
	}
}
