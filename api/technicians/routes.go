package technicians

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// AdminRoutes creates a new Chi router with the admin routes for the technician resource,
// at the root level
func AdminRoutes(technicianProvider db.TechnicianProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", GetAll(technicianProvider))
	router.Get("/{id}", GetSingle(technicianProvider))
	router.Put("/{id}", Update(technicianProvider))
	return router
}

// Routes creates a new Chi router with the technician-scoped routes
func Routes(technicianProvider db.TechnicianProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/{id}/kyc-status", KYCStatus(technicianProvider))
	return router
}

// GetAll lists technicians filtered by verification status and search term
func GetAll(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technicians, err := technicianProvider.GetAllTechnicians(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

		filtered := []types.Technician{}
		for _, technician := range technicians {
			if status != "" && !strings.EqualFold(technician.VerificationStatus, status) {
				continue
			}
			if search != "" && !fuzzy.MatchNormalized(search, strings.ToLower(technician.Username)) &&
				!fuzzy.MatchNormalized(search, strings.ToLower(technician.Email)) {
				continue
			}
			filtered = append(filtered, technician)
		}

		start, end, info := util.Page(r, len(filtered), 10)
		render.JSON(w, r, types.TechnicianPage{
			Items:    filtered[start:end],
			PageInfo: info,
		})
	}
}

// GetSingle gets a single technician by its ID
func GetSingle(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		technician, err := technicianProvider.GetTechnician(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, technician)
	}
}

// Update applies a partial update to a technician
func Update(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		var update types.TechnicianUpdate
		err := json.NewDecoder(r.Body).Decode(&update)
		if err != nil {
			util.Error(w, err)
			return
		}

		updated, err := technicianProvider.UpdateTechnician(r.Context(), id, update)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, updated)
	}
}

// KYCStatus reports the KYC state of a single technician
func KYCStatus(technicianProvider db.TechnicianProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		technician, err := technicianProvider.GetTechnician(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, types.KYCStatus{
			TechnicianID:       technician.ID,
			FirebaseKYCStatus:  technician.FirebaseKYCStatus,
			VerificationStatus: technician.VerificationStatus,
			FirebaseKYCData:    technician.FirebaseKYCData,
			UpdatedAt:          technician.UpdatedAt,
		})
	}
}
