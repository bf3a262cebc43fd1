package admin

import (
	"context"
	"strings"

	"github.com/techipro/konnect-admin/types"
)

// Overview returns the admin landing summary
func (s *Service) Overview(ctx context.Context) (*types.Overview, error) {
	var overview types.Overview
	if err := s.call(ctx, getRequest("/admin/overview", nil), &overview); err != nil {
		return nil, err
	}

	return &overview, nil
}

// SystemHealth returns the backend health report
func (s *Service) SystemHealth(ctx context.Context) (*types.SystemHealth, error) {
	var health types.SystemHealth
	if err := s.call(ctx, getRequest("/admin/system/health", nil), &health); err != nil {
		return nil, err
	}

	return &health, nil
}

// AnalyticsSummary returns registration and KYC analytics for a period such as "7d"
func (s *Service) AnalyticsSummary(ctx context.Context, period string) (*types.AnalyticsSummary, error) {
	var summary types.AnalyticsSummary
	req := getRequest("/admin/analytics/summary", periodParams(period))
	if err := s.call(ctx, req, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// AppointmentAnalytics returns booking analytics for a period
func (s *Service) AppointmentAnalytics(ctx context.Context, period string) (*types.AppointmentAnalytics, error) {
	var analytics types.AppointmentAnalytics
	req := getRequest("/admin/analytics/appointments", periodParams(period))
	if err := s.call(ctx, req, &analytics); err != nil {
		return nil, err
	}

	return &analytics, nil
}

// DashboardStats returns the legacy dashboard counters
func (s *Service) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	var stats types.DashboardStats
	if err := s.call(ctx, getRequest("/admin/dashboard/stats", nil), &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

func periodParams(period string) map[string]string {
	period = strings.TrimSpace(period)
	if period == "" {
		period = DefaultPeriod
	}

	return map[string]string{"period": period}
}
