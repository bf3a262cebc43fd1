package console

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hako/durafmt"

	"github.com/techipro/konnect-admin/admin"
	"github.com/techipro/konnect-admin/types"
)

func (c *Console) runSystem(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("system", args, "overview", "health", "analytics", "appointment-analytics", "legacy-stats")
	if err != nil {
		return err
	}

	switch sub {
	case "overview":
		if err := c.parseNone(flag.NewFlagSet("system overview", flag.ContinueOnError), rest); err != nil {
			return err
		}
		overview, err := c.service.Overview(ctx)
		if err != nil {
			return err
		}
		return c.output(overview, func(w io.Writer) {
			row(w, "Total users", overview.TotalUsers)
			row(w, "Active technicians", overview.ActiveTechnicians)
			row(w, "Pending verifications", overview.PendingVerifications)
			row(w, "Total orders", overview.TotalOrders)
		})
	case "health":
		if err := c.parseNone(flag.NewFlagSet("system health", flag.ContinueOnError), rest); err != nil {
			return err
		}
		health, err := c.service.SystemHealth(ctx)
		if err != nil {
			return err
		}
		return c.output(health, func(w io.Writer) {
			writeHealth(w, health)
		})
	case "analytics":
		period, err := c.parsePeriod("system analytics", rest)
		if err != nil {
			return err
		}
		summary, err := c.service.AnalyticsSummary(ctx, period)
		if err != nil {
			return err
		}
		return c.output(summary, func(w io.Writer) {
			row(w, "Period", summary.Period)
			row(w, "New registrations", summary.NewRegistrations)
			row(w, "KYC completions", summary.KYCCompletions)
			row(w, "Active users", summary.ActiveUsers)
			row(w, "Approved / rejected / pending", fmt.Sprintf("%d / %d / %d",
				summary.ApprovedCount, summary.RejectedCount, summary.PendingCount))
			for _, category := range summary.TopCategories {
				row(w, "Top category", fmt.Sprintf("%s (%d)", category.Name, category.Count))
			}
		})
	case "appointment-analytics":
		period, err := c.parsePeriod("system appointment-analytics", rest)
		if err != nil {
			return err
		}
		analytics, err := c.service.AppointmentAnalytics(ctx, period)
		if err != nil {
			return err
		}
		return c.output(analytics, func(w io.Writer) {
			row(w, "Period", analytics.Period)
			row(w, "Total", analytics.Total)
			row(w, "Completed", analytics.Completed)
			row(w, "Cancelled", analytics.Cancelled)
			row(w, "Revenue", money(analytics.Revenue))
			statuses := make([]string, 0, len(analytics.ByStatus))
			for status := range analytics.ByStatus {
				statuses = append(statuses, status)
			}
			sort.Strings(statuses)
			for _, status := range statuses {
				row(w, "  "+status, analytics.ByStatus[status])
			}
		})
	default:
		if err := c.parseNone(flag.NewFlagSet("system legacy-stats", flag.ContinueOnError), rest); err != nil {
			return err
		}
		stats, err := c.service.DashboardStats(ctx)
		if err != nil {
			return err
		}
		return c.output(stats, func(w io.Writer) {
			row(w, "Total users", stats.TotalUsers)
			row(w, "Total technicians", stats.TotalTechnicians)
			row(w, "Total appointments", stats.TotalAppointments)
			row(w, "Pending KYC", stats.PendingKYC)
		})
	}
}

func (c *Console) parsePeriod(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	period := fs.String("period", admin.DefaultPeriod, "reporting period such as 7d, 30d or 90d")
	if err := c.parseNone(fs, args); err != nil {
		return "", err
	}

	return *period, nil
}

func writeHealth(w io.Writer, health *types.SystemHealth) {
	row(w, "Status", health.Status)
	row(w, "Database", componentStatus(health.Database))
	row(w, "API", componentStatus(health.API))
	row(w, "Firebase", componentStatus(health.Firebase))
	row(w, "Uptime", durafmt.ParseShort(time.Duration(health.Uptime*float64(time.Second))).String())
}

func componentStatus(component types.ComponentHealth) string {
	if component.ResponseTime > 0 {
		return fmt.Sprintf("%s (%.0fms)", orDash(component.Status), component.ResponseTime)
	}
	return orDash(component.Status)
}
