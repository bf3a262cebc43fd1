package console

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/techipro/konnect-admin/admin"
	"github.com/techipro/konnect-admin/types"
)

func (c *Console) runUsers(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("users", args, "list", "show", "update", "delete")
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		return c.usersList(ctx, rest)
	case "show":
		return c.usersShow(ctx, rest)
	case "update":
		return c.usersUpdate(ctx, rest)
	default:
		return c.usersDelete(ctx, rest)
	}
}

func (c *Console) usersList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ContinueOnError)
	page := fs.Int("page", admin.DefaultPage, "page number")
	limit := fs.Int("limit", admin.DefaultLimit, "page size")
	role := fs.String("role", "", "USER, TECHNICIAN or ADMIN")
	status := fs.String("status", "", "active or inactive")
	search := fs.String("search", "", "server-side search (at least 2 characters)")
	match := fs.String("match", "", "fuzzy filter on the returned page")
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	result, err := c.service.ListUsers(ctx, admin.UserQuery{
		Page:   *page,
		Limit:  *limit,
		Role:   *role,
		Status: *status,
		Search: *search,
	})
	if err != nil {
		return err
	}
	result.Items = admin.MatchUsers(result.Items, *match)

	return c.output(result, func(w io.Writer) {
		if len(result.Items) == 0 {
			fmt.Fprintln(w, "No users found.")
		} else {
			row(w, "ID", "USERNAME", "EMAIL", "ROLE", "ACTIVE", "JOINED")
			for _, user := range result.Items {
				row(w, user.ID, user.Username, orDash(user.Email), user.Role, yesNo(user.IsActive), ago(user.CreatedAt))
			}
		}
		pageFooter(w, result.PageInfo, len(result.Items))
	})
}

func (c *Console) usersShow(ctx context.Context, args []string) error {
	id, err := c.parseID(flag.NewFlagSet("users show", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	user, err := c.service.GetUser(ctx, id)
	if err != nil {
		return err
	}

	return c.output(user, func(w io.Writer) {
		writeUser(w, user)
	})
}

func (c *Console) usersUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users update", flag.ContinueOnError)
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email")
	role := fs.String("role", "", "USER, TECHNICIAN or ADMIN")
	active := fs.String("active", "", "true or false")
	id, err := c.parseID(fs, args)
	if err != nil {
		return err
	}

	update := types.UserUpdate{}
	set := visited(fs)
	if set["username"] {
		update.Username = username
	}
	if set["email"] {
		update.Email = email
	}
	if set["role"] {
		update.Role = role
	}
	if set["active"] {
		value, err := strconv.ParseBool(*active)
		if err != nil {
			return usagef("--active must be true or false")
		}
		update.IsActive = &value
	}
	if len(set) == 0 {
		return usagef("users update needs at least one field flag")
	}

	user, err := c.service.UpdateUser(ctx, id, update)
	if err != nil {
		return err
	}

	return c.output(user, func(w io.Writer) {
		fmt.Fprintln(w, "User updated.")
		writeUser(w, user)
	})
}

func (c *Console) usersDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm the deletion")
	id, err := c.parseID(fs, args)
	if err != nil {
		return err
	}
	if !*yes {
		return usagef("refusing to delete user %s without --yes", id)
	}

	if err := c.service.DeleteUser(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "User %s deleted.\n", id)
	return nil
}

func writeUser(w io.Writer, user *types.User) {
	row(w, "ID", user.ID)
	row(w, "Username", user.Username)
	row(w, "Email", orDash(user.Email))
	row(w, "Phone", orDash(user.PhoneNumber))
	row(w, "Role", user.Role)
	row(w, "Active", yesNo(user.IsActive))
	row(w, "Joined", ago(user.CreatedAt))
	row(w, "Updated", ago(user.UpdatedAt))
}

func (c *Console) runTechnicians(ctx context.Context, args []string) error {
	sub, rest, err := subcommand("technicians", args, "list", "show", "update")
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		return c.techniciansList(ctx, rest)
	case "show":
		return c.techniciansShow(ctx, rest)
	default:
		return c.techniciansUpdate(ctx, rest)
	}
}

func (c *Console) techniciansList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("technicians list", flag.ContinueOnError)
	page := fs.Int("page", admin.DefaultPage, "page number")
	limit := fs.Int("limit", admin.DefaultLimit, "page size")
	status := fs.String("status", "", "verification status (PENDING, VERIFIED, REJECTED)")
	search := fs.String("search", "", "server-side search (at least 2 characters)")
	match := fs.String("match", "", "fuzzy filter on the returned page")
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	result, err := c.service.ListTechnicians(ctx, admin.TechnicianQuery{
		Page:   *page,
		Limit:  *limit,
		Status: *status,
		Search: *search,
	})
	if err != nil {
		return err
	}
	result.Items = admin.MatchTechnicians(result.Items, *match)

	return c.output(result, func(w io.Writer) {
		writeTechnicians(w, result.Items)
		pageFooter(w, result.PageInfo, len(result.Items))
	})
}

func (c *Console) techniciansShow(ctx context.Context, args []string) error {
	id, err := c.parseID(flag.NewFlagSet("technicians show", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	technician, err := c.service.GetTechnician(ctx, id)
	if err != nil {
		return err
	}

	return c.output(technician, func(w io.Writer) {
		writeTechnician(w, technician)
	})
}

func (c *Console) techniciansUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("technicians update", flag.ContinueOnError)
	verification := fs.String("verification", "", "PENDING, VERIFIED or REJECTED")
	availability := fs.String("availability", "", "availability status")
	category := fs.String("category", "", "category ID")
	location := fs.String("location", "", "location")
	id, err := c.parseID(fs, args)
	if err != nil {
		return err
	}

	update := types.TechnicianUpdate{}
	set := visited(fs)
	if set["verification"] {
		update.VerificationStatus = verification
	}
	if set["availability"] {
		update.AvailabilityStatus = availability
	}
	if set["category"] {
		update.CategoryID = category
	}
	if set["location"] {
		update.Location = location
	}
	if len(set) == 0 {
		return usagef("technicians update needs at least one field flag")
	}

	technician, err := c.service.UpdateTechnician(ctx, id, update)
	if err != nil {
		return err
	}

	return c.output(technician, func(w io.Writer) {
		fmt.Fprintln(w, "Technician updated.")
		writeTechnician(w, technician)
	})
}

// visited reports which flags were given explicitly
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
