package users

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

// Routes creates a new Chi router with all of the routes for the user resource,
// at the root level
func Routes(userProvider db.UserProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", GetAll(userProvider))
	router.Get("/{id}", GetSingle(userProvider))
	router.Put("/{id}", Update(userProvider))
	router.Delete("/{id}", Delete(userProvider))
	return router
}

// GetAll lists users filtered by role, active status and search term
func GetAll(userProvider db.UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userProvider.GetAllUsers(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		query := r.URL.Query()
		role := strings.TrimSpace(query.Get("role"))
		status := strings.ToLower(strings.TrimSpace(query.Get("status")))
		search := strings.ToLower(strings.TrimSpace(query.Get("search")))

		filtered := []types.User{}
		for _, user := range users {
			if role != "" && !strings.EqualFold(user.Role, role) {
				continue
			}
			if status == "active" && !user.IsActive || status == "inactive" && user.IsActive {
				continue
			}
			if search != "" && !fuzzy.MatchNormalized(search, strings.ToLower(user.Username)) &&
				!fuzzy.MatchNormalized(search, strings.ToLower(user.Email)) {
				continue
			}
			filtered = append(filtered, user)
		}

		start, end, info := util.Page(r, len(filtered), 10)
		render.JSON(w, r, types.UserPage{
			Items:    filtered[start:end],
			PageInfo: info,
		})
	}
}

// GetSingle gets a single user by its ID
func GetSingle(userProvider db.UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		user, err := userProvider.GetUser(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, user)
	}
}

// Update applies a partial update to a user
func Update(userProvider db.UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		var update types.UserUpdate
		err := json.NewDecoder(r.Body).Decode(&update)
		if err != nil {
			util.Error(w, err)
			return
		}

		if update.Role != nil {
			switch strings.ToUpper(strings.TrimSpace(*update.Role)) {
			case types.RoleUser, types.RoleTechnician, types.RoleAdmin:
			default:
				util.BadRequest(w, "role must be one of USER, TECHNICIAN, ADMIN")
				return
			}
		}

		updated, err := userProvider.UpdateUser(r.Context(), id, update)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, updated)
	}
}

// Delete deletes a user
func Delete(userProvider db.UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		err := userProvider.DeleteUser(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
