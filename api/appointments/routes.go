package appointments

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

// Routes creates a new Chi router with all of the routes for the appointment resource,
// at the root level
func Routes(appointmentProvider db.AppointmentProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", GetAll(appointmentProvider))
	router.Get("/{id}", GetSingle(appointmentProvider))
	router.Put("/{id}", Update(appointmentProvider))
	return router
}

// GetAll lists appointments, optionally filtered by status
func GetAll(appointmentProvider db.AppointmentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, err := appointmentProvider.GetAllAppointments(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		filtered := []types.Appointment{}
		for _, appointment := range appointments {
			if status == "" || strings.EqualFold(appointment.Status, status) {
				filtered = append(filtered, appointment)
			}
		}

		start, end, info := util.Page(r, len(filtered), 50)
		render.JSON(w, r, types.AppointmentPage{
			Items:    filtered[start:end],
			PageInfo: info,
		})
	}
}

// GetSingle gets a single appointment by its ID
func GetSingle(appointmentProvider db.AppointmentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		appointment, err := appointmentProvider.GetAppointment(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, appointment)
	}
}

// Update applies a partial update to an appointment
func Update(appointmentProvider db.AppointmentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		var update types.AppointmentUpdate
		err := json.NewDecoder(r.Body).Decode(&update)
		if err != nil {
			util.Error(w, err)
			return
		}

		if update.Status != nil && !validStatus(*update.Status) {
			util.BadRequest(w, "unknown appointment status")
			return
		}

		updated, err := appointmentProvider.UpdateAppointment(r.Context(), id, update)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, updated)
	}
}

func validStatus(status string) bool {
	switch status {
	case types.AppointmentScheduled, types.AppointmentInProgress,
		types.AppointmentCompleted, types.AppointmentCancelled:
		return true
	}
	return false
}
