package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/segmentio/ksuid"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// Routes creates a new Chi router with all of the routes for the category resource,
// at the root level
func Routes(categoryProvider db.CategoryProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", GetAll(categoryProvider))
	router.Get("/{id}", GetSingle(categoryProvider))
	router.Post("/", Create(categoryProvider))
	router.Put("/{id}", Update(categoryProvider))
	router.Delete("/{id}", Delete(categoryProvider))
	return router
}

// GetAll gets all categories
func GetAll(categoryProvider db.CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := categoryProvider.GetAllCategories(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		// Return the list in a JSON object
		render.JSON(w, r, types.CategoryList{Categories: categories})
	}
}

// GetSingle gets a single category by its ID
func GetSingle(categoryProvider db.CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		category, err := categoryProvider.GetCategory(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, category)
	}
}

// Create creates a new category with a generated ID
func Create(categoryProvider db.CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeInput(w, r)
		if !ok {
			return
		}

		category := types.Category{
			ID:          ksuid.New().String(),
			Name:        input.Name,
			Description: input.Description,
			IsActive:    input.IsActive,
		}
		err := categoryProvider.CreateCategory(r.Context(), category)
		if err != nil {
			util.Error(w, err)
			return
		}

		created, err := categoryProvider.GetCategory(r.Context(), category.ID)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, created)
	}
}

// Update replaces a category's fields
func Update(categoryProvider db.CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		input, ok := decodeInput(w, r)
		if !ok {
			return
		}

		updated, err := categoryProvider.UpdateCategory(r.Context(), id, input)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, updated)
	}
}

// Delete deletes a category
func Delete(categoryProvider db.CategoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			util.ErrorWithCode(w, errors.New("the URL parameter is empty"),
				http.StatusBadRequest)
			return
		}

		err := categoryProvider.DeleteCategory(r.Context(), id)
		if err != nil {
			util.Error(w, err)
			return
		}

		render.JSON(w, r, types.MessageResponse{Message: "Category deleted"})
	}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (types.CategoryInput, bool) {
	var input types.CategoryInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		util.Error(w, err)
		return input, false
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		util.BadRequest(w, "category name cannot be empty")
		return input, false
	}

	return input, true
}
