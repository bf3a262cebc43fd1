package admin

import (
	"context"
	"net/http"

	"github.com/techipro/konnect-admin/types"
)

// ListAppointments returns appointments, optionally filtered by status
func (s *Service) ListAppointments(ctx context.Context, status string) (*types.AppointmentPage, error) {
	params := map[string]string{}
	setIf(params, "status", status)

	var page types.AppointmentPage
	if err := s.call(ctx, getRequest("/admin/appointments", params), &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetAppointment returns a single appointment
func (s *Service) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	escaped, err := segment("appointment id", id)
	if err != nil {
		return nil, err
	}

	var appointment types.Appointment
	if err := s.call(ctx, getRequest("/admin/appointments/"+escaped, nil), &appointment); err != nil {
		return nil, err
	}

	return &appointment, nil
}

// UpdateAppointment applies a partial update and returns the stored appointment
func (s *Service) UpdateAppointment(ctx context.Context, id string, update types.AppointmentUpdate) (*types.Appointment, error) {
	escaped, err := segment("appointment id", id)
	if err != nil {
		return nil, err
	}

	var appointment types.Appointment
	req := jsonRequest(http.MethodPut, "/admin/appointments/"+escaped, update)
	if err := s.call(ctx, req, &appointment); err != nil {
		return nil, err
	}

	return &appointment, nil
}

// ListPayments returns payments, optionally filtered by status
func (s *Service) ListPayments(ctx context.Context, status string) (*types.PaymentPage, error) {
	params := map[string]string{}
	setIf(params, "status", status)

	var page types.PaymentPage
	if err := s.call(ctx, getRequest("/admin/payments", params), &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetPayment returns a single payment
func (s *Service) GetPayment(ctx context.Context, id string) (*types.Payment, error) {
	escaped, err := segment("payment id", id)
	if err != nil {
		return nil, err
	}

	var payment types.Payment
	if err := s.call(ctx, getRequest("/admin/payments/"+escaped, nil), &payment); err != nil {
		return nil, err
	}

	return &payment, nil
}
