package types

import "time"

// Overview is the admin landing summary
type Overview struct {
	TotalUsers           int `json:"totalUsers"`
	ActiveTechnicians    int `json:"activeTechnicians"`
	PendingVerifications int `json:"pendingVerifications"`
	TotalOrders          int `json:"totalOrders"`
}

// ComponentHealth is the health of a single backend dependency
type ComponentHealth struct {
	Status       string  `json:"status"`
	ResponseTime float64 `json:"responseTime,omitempty"`
}

// SystemHealth is returned by /admin/system/health
type SystemHealth struct {
	Status    string          `json:"status"`
	Database  ComponentHealth `json:"database"`
	API       ComponentHealth `json:"api"`
	Firebase  ComponentHealth `json:"firebase"`
	Uptime    float64         `json:"uptime"`
	Timestamp time.Time       `json:"timestamp"`
}

// Healthy reports whether the overall status is healthy
func (h SystemHealth) Healthy() bool {
	return h.Status == "healthy"
}

// CategoryCount pairs a category with a count
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnalyticsSummary is returned by /admin/analytics/summary
type AnalyticsSummary struct {
	Period           string          `json:"period"`
	NewRegistrations int             `json:"newRegistrations"`
	KYCCompletions   int             `json:"kycCompletions"`
	ActiveUsers      int             `json:"activeUsers"`
	TopCategories    []CategoryCount `json:"topCategories"`
	ApprovedCount    int             `json:"approvedCount"`
	RejectedCount    int             `json:"rejectedCount"`
	PendingCount     int             `json:"pendingCount"`
}

// AppointmentAnalytics is returned by /admin/analytics/appointments
type AppointmentAnalytics struct {
	Period    string         `json:"period"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Cancelled int            `json:"cancelled"`
	Revenue   float64        `json:"revenue"`
	ByStatus  map[string]int `json:"byStatus"`
}

// DashboardStats is the legacy summary at /admin/dashboard/stats
type DashboardStats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalTechnicians  int `json:"totalTechnicians"`
	TotalAppointments int `json:"totalAppointments"`
	PendingKYC        int `json:"pendingKyc"`
}
