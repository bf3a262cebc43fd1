package settings

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// Routes creates a new Chi router for the singleton settings resource
func Routes(settingsProvider db.SettingsProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", Get(settingsProvider))
	router.Put("/", Update(settingsProvider))
	return router
}

// Get returns the current settings wrapped in a "settings" object
func Get(settingsProvider db.SettingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := settingsProvider.GetSettings(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, types.SettingsEnvelope{Settings: settings})
	}
}

// Update replaces the settings
func Update(settingsProvider db.SettingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings types.Settings
		err := json.NewDecoder(r.Body).Decode(&settings)
		if err != nil {
			util.Error(w, err)
			return
		}

		settings.AppName = strings.TrimSpace(settings.AppName)
		if settings.AppName == "" {
			util.BadRequest(w, "appName cannot be empty")
			return
		}
		if _, err := mail.ParseAddress(settings.SupportEmail); err != nil {
			util.BadRequest(w, "supportEmail must be a valid address")
			return
		}
		if settings.MaxTechniciansPerCategory < 0 || settings.BookingAdvanceDays < 0 {
			util.BadRequest(w, "limits cannot be negative")
			return
		}

		updated, err := settingsProvider.UpdateSettings(r.Context(), settings)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, types.SettingsEnvelope{Settings: updated})
	}
}
