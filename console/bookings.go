package console

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/techipro/konnect-admin/types"
)

func (c *Console) runAppointments(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("appointments", args, "list", "show", "update")
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("appointments list", flag.ContinueOnError)
		status := fs.String("status", "", "scheduled, in_progress, completed or cancelled")
		if err := c.parseNone(fs, rest); err != nil {
			return err
		}

		result, err := c.service.ListAppointments(ctx, *status)
		if err != nil {
			return err
		}
		return c.output(result, func(w io.Writer) {
			if len(result.Items) == 0 {
				fmt.Fprintln(w, "No appointments found.")
				return
			}
			row(w, "ID", "CUSTOMER", "TECHNICIAN", "SERVICE", "WHEN", "STATUS", "AMOUNT")
			for _, appointment := range result.Items {
				service := "-"
				if appointment.Service != nil {
					service = appointment.Service.Name
				}
				row(w, appointment.ID, partyName(appointment.Customer, appointment.User),
					partyName(appointment.Technician), service, ago(appointment.ScheduledAt),
					appointment.Status, money(appointment.Amount))
			}
		})
	case "show":
		id, err := c.parseID(flag.NewFlagSet("appointments show", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}

		appointment, err := c.service.GetAppointment(ctx, id)
		if err != nil {
			return err
		}
		return c.output(appointment, func(w io.Writer) {
			writeAppointment(w, appointment)
		})
	default:
		return c.appointmentsUpdate(ctx, rest)
	}
}

func (c *Console) appointmentsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("appointments update", flag.ContinueOnError)
	status := fs.String("status", "", "scheduled, in_progress, completed or cancelled")
	technician := fs.String("technician", "", "technician ID to assign")
	notes := fs.String("notes", "", "notes")
	scheduledAt := fs.String("scheduled-at", "", "new time (RFC3339)")
	id, err := c.parseID(fs, args)
	if err != nil {
		return err
	}

	update := types.AppointmentUpdate{}
	set := visited(fs)
	if set["status"] {
		update.Status = status
	}
	if set["technician"] {
		update.TechnicianID = technician
	}
	if set["notes"] {
		update.Notes = notes
	}
	if set["scheduled-at"] {
		when, err := time.Parse(time.RFC3339, *scheduledAt)
		if err != nil {
			return usagef("--scheduled-at must be an RFC3339 time such as 2026-01-02T15:04:05Z")
		}
		update.ScheduledAt = &when
	}
	if len(set) == 0 {
		return usagef("appointments update needs at least one field flag")
	}

	appointment, err := c.service.UpdateAppointment(ctx, id, update)
	if err != nil {
		return err
	}

	return c.output(appointment, func(w io.Writer) {
		fmt.Fprintln(w, "Appointment updated.")
		writeAppointment(w, appointment)
	})
}

func writeAppointment(w io.Writer, appointment *types.Appointment) {
	row(w, "ID", appointment.ID)
	row(w, "Customer", partyName(appointment.Customer, appointment.User))
	row(w, "Technician", partyName(appointment.Technician))
	if appointment.Service != nil {
		row(w, "Service", appointment.Service.Name)
	}
	row(w, "Scheduled", appointment.ScheduledAt.Format(time.RFC1123)+" ("+ago(appointment.ScheduledAt)+")")
	row(w, "Status", appointment.Status)
	row(w, "Amount", money(appointment.Amount))
	row(w, "Notes", orDash(appointment.Notes))
}

func (c *Console) runPayments(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("payments", args, "list", "show")
	if err != nil {
		return err
	}

	if sub == "show" {
		id, err := c.parseID(flag.NewFlagSet("payments show", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}

		payment, err := c.service.GetPayment(ctx, id)
		if err != nil {
			return err
		}
		return c.output(payment, func(w io.Writer) {
			row(w, "ID", payment.ID)
			row(w, "Appointment", orDash(payment.AppointmentID))
			row(w, "Customer", partyName(payment.Customer, payment.User))
			row(w, "Amount", money(payment.Amount))
			row(w, "Method", orDash(payment.PaymentMethod))
			row(w, "Status", payment.Status)
			row(w, "Created", ago(payment.CreatedAt))
		})
	}

	fs := flag.NewFlagSet("payments list", flag.ContinueOnError)
	status := fs.String("status", "", "pending, completed or failed")
	if err := c.parseNone(fs, rest); err != nil {
		return err
	}

	result, err := c.service.ListPayments(ctx, *status)
	if err != nil {
		return err
	}

	return c.output(result, func(w io.Writer) {
		if len(result.Items) == 0 {
			fmt.Fprintln(w, "No payments found.")
			return
		}
		row(w, "ID", "CUSTOMER", "AMOUNT", "METHOD", "STATUS", "CREATED")
		for _, payment := range result.Items {
			row(w, payment.ID, partyName(payment.Customer, payment.User), money(payment.Amount),
				orDash(payment.PaymentMethod), payment.Status, ago(payment.CreatedAt))
		}
	})
}
