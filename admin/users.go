package admin

import (
	"context"
	"net/http"

	"github.com/techipro/konnect-admin/types"
)

// UserQuery filters the user listing
type UserQuery struct {
	Page   int
	Limit  int
	Role   string
	Status string
	Search string
}

// TechnicianQuery filters the technician listing
type TechnicianQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// ListUsers returns a page of users
func (s *Service) ListUsers(ctx context.Context, query UserQuery) (*types.UserPage, error) {
	params := pageParams(query.Page, query.Limit, DefaultLimit)
	setIf(params, "role", query.Role)
	setIf(params, "status", query.Status)
	setIf(params, "search", normalizeSearch(query.Search))

	var page types.UserPage
	if err := s.call(ctx, getRequest("/admin/users", params), &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetUser returns a single user
func (s *Service) GetUser(ctx context.Context, id string) (*types.User, error) {
	escaped, err := segment("user id", id)
	if err != nil {
		return nil, err
	}

	var user types.User
	if err := s.call(ctx, getRequest("/admin/users/"+escaped, nil), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser applies a partial update and returns the stored user
func (s *Service) UpdateUser(ctx context.Context, id string, update types.UserUpdate) (*types.User, error) {
	escaped, err := segment("user id", id)
	if err != nil {
		return nil, err
	}

	var user types.User
	if err := s.call(ctx, jsonRequest(http.MethodPut, "/admin/users/"+escaped, update), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	escaped, err := segment("user id", id)
	if err != nil {
		return err
	}

	return s.call(ctx, jsonRequest(http.MethodDelete, "/admin/users/"+escaped, nil), nil)
}

// ListTechnicians returns a page of technicians
func (s *Service) ListTechnicians(ctx context.Context, query TechnicianQuery) (*types.TechnicianPage, error) {
	params := pageParams(query.Page, query.Limit, DefaultLimit)
	setIf(params, "status", query.Status)
	setIf(params, "search", normalizeSearch(query.Search))

	var page types.TechnicianPage
	if err := s.call(ctx, getRequest("/admin/technicians", params), &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetTechnician returns a single technician
func (s *Service) GetTechnician(ctx context.Context, id string) (*types.Technician, error) {
	escaped, err := segment("technician id", id)
	if err != nil {
		return nil, err
	}

	var technician types.Technician
	if err := s.call(ctx, getRequest("/admin/technicians/"+escaped, nil), &technician); err != nil {
		return nil, err
	}

	return &technician, nil
}

// UpdateTechnician applies a partial update and returns the stored technician
func (s *Service) UpdateTechnician(ctx context.Context, id string, update types.TechnicianUpdate) (*types.Technician, error) {
	escaped, err := segment("technician id", id)
	if err != nil {
		return nil, err
	}

	var technician types.Technician
	req := jsonRequest(http.MethodPut, "/admin/technicians/"+escaped, update)
	if err := s.call(ctx, req, &technician); err != nil {
		return nil, err
	}

	return &technician, nil
}
