package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/techipro/konnect-admin/types"
)

// ListCategories returns every service category
func (s *Service) ListCategories(ctx context.Context) ([]types.Category, error) {
	var list types.CategoryList
	if err := s.call(ctx, getRequest("/admin/categories", nil), &list); err != nil {
		return nil, err
	}

	return list.Categories, nil
}

// GetCategory returns a single category
func (s *Service) GetCategory(ctx context.Context, id string) (*types.Category, error) {
	escaped, err := segment("category id", id)
	if err != nil {
		return nil, err
	}

	var category types.Category
	if err := s.call(ctx, getRequest("/admin/categories/"+escaped, nil), &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// CreateCategory creates a category; the name is required
func (s *Service) CreateCategory(ctx context.Context, input types.CategoryInput) (*types.Category, error) {
	input, err := validCategory(input)
	if err != nil {
		return nil, err
	}

	var category types.Category
	if err := s.call(ctx, jsonRequest(http.MethodPost, "/admin/categories", input), &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// UpdateCategory replaces a category's fields
func (s *Service) UpdateCategory(ctx context.Context, id string, input types.CategoryInput) (*types.Category, error) {
	escaped, err := segment("category id", id)
	if err != nil {
		return nil, err
	}
	input, err = validCategory(input)
	if err != nil {
		return nil, err
	}

	var category types.Category
	req := jsonRequest(http.MethodPut, "/admin/categories/"+escaped, input)
	if err := s.call(ctx, req, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory removes a category
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	escaped, err := segment("category id", id)
	if err != nil {
		return err
	}

	return s.call(ctx, jsonRequest(http.MethodDelete, "/admin/categories/"+escaped, nil), nil)
}

func validCategory(input types.CategoryInput) (types.CategoryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return input, NewValidationError("category name", "cannot be empty")
	}

	return input, nil
}

// GetSettings returns the platform settings
func (s *Service) GetSettings(ctx context.Context) (*types.Settings, error) {
	var envelope types.SettingsEnvelope
	if err := s.call(ctx, getRequest("/admin/settings", nil), &envelope); err != nil {
		return nil, err
	}

	return envelope.Settings, nil
}

// UpdateSettings replaces the platform settings and returns the stored values
func (s *Service) UpdateSettings(ctx context.Context, settings types.Settings) (*types.Settings, error) {
	var envelope types.SettingsEnvelope
	if err := s.call(ctx, jsonRequest(http.MethodPut, "/admin/settings", settings), &envelope); err != nil {
		return nil, err
	}

	return envelope.Settings, nil
}

// ListServices returns the bookable services
func (s *Service) ListServices(ctx context.Context) (*types.ServicePage, error) {
	var page types.ServicePage
	if err := s.call(ctx, getRequest("/admin/services", nil), &page); err != nil {
		return nil, err
	}

	return &page, nil
}
