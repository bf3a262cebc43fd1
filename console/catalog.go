package console

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/techipro/konnect-admin/types"
)

func (c *Console) runCategories(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("categories", args, "list", "show", "create", "update", "delete")
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		return c.categoriesList(ctx, rest)
	case "show":
		return c.categoriesShow(ctx, rest)
	case "create":
		return c.categoriesSave(ctx, rest, false)
	case "update":
		return c.categoriesSave(ctx, rest, true)
	default:
		return c.categoriesDelete(ctx, rest)
	}
}

func (c *Console) categoriesList(ctx context.Context, args []string) error {
	if err := c.parseNone(flag.NewFlagSet("categories list", flag.ContinueOnError), args); err != nil {
		return err
	}

	categories, err := c.service.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.output(types.CategoryList{Categories: categories}, func(w io.Writer) {
		if len(categories) == 0 {
			fmt.Fprintln(w, "No categories found.")
			return
		}
		row(w, "ID", "NAME", "ACTIVE", "TECHNICIANS", "DESCRIPTION")
		for _, category := range categories {
			row(w, category.ID, category.Name, yesNo(category.IsActive), category.TechnicianCount, orDash(category.Description))
		}
	})
}

func (c *Console) categoriesShow(ctx context.Context, args []string) error {
	id, err := c.parseID(flag.NewFlagSet("categories show", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	category, err := c.service.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	return c.output(category, func(w io.Writer) {
		writeCategory(w, category)
	})
}

func (c *Console) categoriesSave(ctx context.Context, args []string, update bool) error {
	name := "categories create"
	if update {
		name = "categories update"
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	categoryName := fs.String("name", "", "category name (required)")
	description := fs.String("description", "", "description")
	active := fs.Bool("active", true, "whether technicians can register under it")
	positional, err := c.parse(fs, args)
	if err != nil {
		return err
	}

	input := types.CategoryInput{Name: *categoryName, Description: *description, IsActive: *active}

	var category *types.Category
	if update {
		if len(positional) != 1 {
			return usagef("%s expects exactly one ID argument", name)
		}
		category, err = c.service.UpdateCategory(ctx, positional[0], input)
	} else {
		if len(positional) != 0 {
			return usagef("%s takes no arguments", name)
		}
		category, err = c.service.CreateCategory(ctx, input)
	}
	if err != nil {
		return err
	}

	return c.output(category, func(w io.Writer) {
		if update {
			fmt.Fprintln(w, "Category updated.")
		} else {
			fmt.Fprintln(w, "Category created.")
		}
		writeCategory(w, category)
	})
}

func (c *Console) categoriesDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm the deletion")
	id, err := c.parseID(fs, args)
	if err != nil {
		return err
	}
	if !*yes {
		return usagef("refusing to delete category %s without --yes", id)
	}

	if err := c.service.DeleteCategory(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "Category %s deleted.\n", id)
	return nil
}

func writeCategory(w io.Writer, category *types.Category) {
	row(w, "ID", category.ID)
	row(w, "Name", category.Name)
	row(w, "Description", orDash(category.Description))
	row(w, "Active", yesNo(category.IsActive))
	row(w, "Technicians", category.TechnicianCount)
	row(w, "Created", ago(category.CreatedAt))
}

func (c *Console) runSettings(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("settings", args, "show", "update")
	if err != nil {
		return err
	}

	if sub == "show" {
		if err := c.parseNone(flag.NewFlagSet("settings show", flag.ContinueOnError), rest); err != nil {
			return err
		}

		settings, err := c.service.GetSettings(ctx)
		if err != nil {
			return err
		}
		return c.output(settings, func(w io.Writer) {
			writeSettings(w, settings)
		})
	}

	fs := flag.NewFlagSet("settings update", flag.ContinueOnError)
	appName := fs.String("app-name", "", "application name")
	supportEmail := fs.String("support-email", "", "support email address")
	maxTechnicians := fs.Int("max-technicians", 0, "maximum technicians per category")
	autoApprove := fs.Bool("kyc-auto-approve", false, "approve KYC automatically after the identity check")
	maintenance := fs.Bool("maintenance", false, "maintenance mode")
	bookingDays := fs.Int("booking-days", 0, "how many days ahead bookings are allowed")
	if err := c.parseNone(fs, rest); err != nil {
		return err
	}

	set := visited(fs)
	if len(set) == 0 {
		return usagef("settings update needs at least one field flag")
	}

	// Settings are replaced as a whole, so start from the current values
	settings, err := c.service.GetSettings(ctx)
	if err != nil {
		return err
	}
	if set["app-name"] {
		settings.AppName = *appName
	}
	if set["support-email"] {
		settings.SupportEmail = *supportEmail
	}
	if set["max-technicians"] {
		settings.MaxTechniciansPerCategory = *maxTechnicians
	}
	if set["kyc-auto-approve"] {
		settings.KYCAutoApprove = *autoApprove
	}
	if set["maintenance"] {
		settings.MaintenanceMode = *maintenance
	}
	if set["booking-days"] {
		settings.BookingAdvanceDays = *bookingDays
	}

	updated, err := c.service.UpdateSettings(ctx, *settings)
	if err != nil {
		return err
	}

	return c.output(updated, func(w io.Writer) {
		fmt.Fprintln(w, "Settings updated.")
		writeSettings(w, updated)
	})
}

func writeSettings(w io.Writer, settings *types.Settings) {
	row(w, "App name", settings.AppName)
	row(w, "Support email", orDash(settings.SupportEmail))
	row(w, "Max technicians per category", settings.MaxTechniciansPerCategory)
	row(w, "KYC auto-approve", yesNo(settings.KYCAutoApprove))
	row(w, "Maintenance mode", yesNo(settings.MaintenanceMode))
	row(w, "Booking advance days", settings.BookingAdvanceDays)
}

func (c *Console) runServices(ctx context.Context, args []string) error {
	_, rest, err := subcommand("services", args, "list")
	if err != nil {
		return err
	}
	if err := c.parseNone(flag.NewFlagSet("services list", flag.ContinueOnError), rest); err != nil {
		return err
	}

	result, err := c.service.ListServices(ctx)
	if err != nil {
		return err
	}

	return c.output(result, func(w io.Writer) {
		if len(result.Items) == 0 {
			fmt.Fprintln(w, "No services found.")
			return
		}
		row(w, "ID", "NAME", "CATEGORY", "PRICE RANGE", "ACTIVE")
		for _, service := range result.Items {
			row(w, service.ID, service.Name, categoryName(service.Category),
				money(service.MinPrice)+" - "+money(service.MaxPrice), yesNo(service.IsActive))
		}
	})
}
