package system

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/types"
	"github.com/techipro/konnect-admin/util"
)

// Register adds the admin summary routes directly onto an /admin router,
// since they share their prefix with the resource routers
func Register(router chi.Router, provider db.Provider, started time.Time) {
	router.Get("/overview", Overview(provider))
	router.Get("/system/health", Health(started))
	router.Get("/analytics/summary", AnalyticsSummary(provider))
	router.Get("/analytics/appointments", AppointmentAnalytics(provider))
	router.Get("/dashboard/stats", DashboardStats(provider))
}

// Overview returns the admin landing counters
func Overview(provider db.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := provider.GetAllUsers(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}
		technicians, err := provider.GetAllTechnicians(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}
		appointments, err := provider.GetAllAppointments(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		overview := types.Overview{
			TotalUsers:  len(users),
			TotalOrders: len(appointments),
		}
		for _, technician := range technicians {
			switch technician.VerificationStatus {
			case types.VerificationVerified:
				overview.ActiveTechnicians++
			case types.VerificationPending:
				overview.PendingVerifications++
			}
		}

		render.JSON(w, r, overview)
	}
}

// Health reports the sandbox itself as healthy
func Health(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, types.SystemHealth{
			Status:    "healthy",
			Database:  types.ComponentHealth{Status: "healthy"},
			API:       types.ComponentHealth{Status: "healthy"},
			Firebase:  types.ComponentHealth{Status: "healthy"},
			Uptime:    time.Since(started).Seconds(),
			Timestamp: time.Now().UTC(),
		})
	}
}

// AnalyticsSummary summarizes registrations and KYC activity over a period
func AnalyticsSummary(provider db.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, since, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		users, err := provider.GetAllUsers(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}
		technicians, err := provider.GetAllTechnicians(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		summary := types.AnalyticsSummary{Period: period, TopCategories: []types.CategoryCount{}}
		for _, user := range users {
			if user.CreatedAt.After(since) {
				summary.NewRegistrations++
			}
			if user.IsActive {
				summary.ActiveUsers++
			}
		}

		counts := map[string]int{}
		for _, technician := range technicians {
			if technician.FirebaseKYCStatus == types.FirebaseKYCVerified && technician.UpdatedAt.After(since) {
				summary.KYCCompletions++
			}
			switch technician.VerificationStatus {
			case types.VerificationVerified:
				summary.ApprovedCount++
			case types.VerificationRejected:
				summary.RejectedCount++
			default:
				summary.PendingCount++
			}
			if technician.Category != nil {
				counts[technician.Category.Name]++
			}
		}

		for name, count := range counts {
			summary.TopCategories = append(summary.TopCategories, types.CategoryCount{Name: name, Count: count})
		}
		sort.Slice(summary.TopCategories, func(i, j int) bool {
			a, b := summary.TopCategories[i], summary.TopCategories[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Name < b.Name
		})

		render.JSON(w, r, summary)
	}
}

// AppointmentAnalytics summarizes bookings over a period
func AppointmentAnalytics(provider db.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, since, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		appointments, err := provider.GetAllAppointments(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		analytics := types.AppointmentAnalytics{Period: period, ByStatus: map[string]int{}}
		for _, appointment := range appointments {
			if appointment.CreatedAt.Before(since) {
				continue
			}

			analytics.Total++
			analytics.ByStatus[appointment.Status]++
			switch appointment.Status {
			case types.AppointmentCompleted:
				analytics.Completed++
				analytics.Revenue += appointment.Amount
			case types.AppointmentCancelled:
				analytics.Cancelled++
			}
		}

		render.JSON(w, r, analytics)
	}
}

// DashboardStats returns the legacy dashboard counters
func DashboardStats(provider db.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := provider.GetAllUsers(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}
		technicians, err := provider.GetAllTechnicians(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}
		appointments, err := provider.GetAllAppointments(r.Context())
		if err != nil {
			util.Error(w, err)
			return
		}

		stats := types.DashboardStats{
			TotalUsers:        len(users),
			TotalTechnicians:  len(technicians),
			TotalAppointments: len(appointments),
		}
		for _, technician := range technicians {
			if technician.VerificationStatus == types.VerificationPending {
				stats.PendingKYC++
			}
		}

		render.JSON(w, r, stats)
	}
}

// parsePeriod reads a "<n>d" period (default 30d), writing a 400 on failure
func parsePeriod(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		period = "30d"
	}

	days, err := strconv.Atoi(strings.TrimSuffix(period, "d"))
	if err != nil || !strings.HasSuffix(period, "d") || days < 1 {
		util.BadRequest(w, "period must look like '7d', '30d' or '90d'")
		return "", time.Time{}, false
	}

	return period, time.Now().Add(-time.Duration(days) * 24 * time.Hour), true
}
