package services

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// Routes creates a new Chi router for the read-only service resource
func Routes(serviceProvider db.ServiceProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", GetAll(serviceProvider))
	return router
}

// GetAll gets all services as a single page
func GetAll(serviceProvider db.ServiceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := serviceProvider.GetAllServices(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		start, end, info := util.Page(r, len(services), 50)
		render.JSON(w, r, types.ServicePage{
			Items:    append([]types.Service{}, services[start:end]...),
			PageInfo: info,
		})
	}
}
