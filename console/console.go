// Package console is the terminal front end of the admin client.
//
// Console performs the effects the client asks for: it is the Navigator
// (a login-required notice and exit status 3) and the Indicator (a one-shot
// access-denied banner and exit status 4). The session itself survives a 403.
package console

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/techipro/konnect-admin/admin"
	"github.com/techipro/konnect-admin/client"
	"github.com/techipro/konnect-admin/session"
)

// Process exit statuses
const (
	ExitOK            = 0
	ExitError         = 1
	ExitUsage         = 2
	ExitLoginRequired = 3
	ExitAccessDenied  = 4
)

// DefaultLoginPath is the sign-in page of the web console
const DefaultLoginPath = "admin-login.html"

// ErrUsage marks command-line mistakes
var ErrUsage = errors.New("usage")

// ErrLoginRequired is returned by commands that need a stored session
// but do not call the API, such as whoami
var ErrLoginRequired = errors.New("not signed in")

// Options configures a Console
type Options struct {
	Session   *session.Session
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	LoginPath string
	Logger    zerolog.Logger
}

// Console runs one command per Run call
type Console struct {
	sess      *session.Session
	service   *admin.Service
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	loginPath string
	logger    zerolog.Logger

	json       bool
	redirected bool
	denied     bool
}

// Ensure Console can be handed to the client as both effect sinks
var (
	_ client.Navigator = (*Console)(nil)
	_ client.Indicator = (*Console)(nil)
)

// New creates a Console. Attach must be called before API commands run.
func New(opts Options) *Console {
	c := &Console{
		sess:      opts.Session,
		stdin:     opts.Stdin,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		loginPath: opts.LoginPath,
		logger:    opts.Logger,
	}
	if c.stdin == nil {
		c.stdin = os.Stdin
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	if c.loginPath == "" {
		c.loginPath = DefaultLoginPath
	}

	return c
}

// Attach sets the admin service used by API commands
func (c *Console) Attach(service *admin.Service) {
	c.service = service
}

// RedirectToLogin implements client.Navigator
func (c *Console) RedirectToLogin(reason client.Outcome) {
	if c.redirected {
		return
	}
	c.redirected = true

	switch reason {
	case client.Unauthorized:
		fmt.Fprintf(c.stderr, "Session expired or was rejected and has been cleared. Sign in again via %s, then run `konnect-admin login`.\n", c.loginPath)
	default:
		fmt.Fprintf(c.stderr, "Not signed in. Sign in via %s, then run `konnect-admin login`.\n", c.loginPath)
	}
}

// ShowAccessDenied implements client.Indicator. The banner is shown once per console.
func (c *Console) ShowAccessDenied(path string) {
	if c.denied {
		return
	}
	c.denied = true

	fmt.Fprintln(c.stderr, "!! ACCESS DENIED: this account does not have administrator privileges.")
	fmt.Fprintf(c.stderr, "!! The request to %s was refused; your session has been kept.\n", path)
}

// Run executes a command line (without the program name) and returns the exit status
func (c *Console) Run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("konnect-admin", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.BoolVar(&c.json, "json", false, "print JSON instead of tables")
	fs.Usage = func() { fmt.Fprint(c.stderr, usageText) }
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitOK
		}
		return ExitUsage
	}

	err := c.dispatch(ctx, fs.Args())
	return c.exitCode(err)
}

func (c *Console) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usageText)
		return errors.Wrap(ErrUsage, "no command given")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "help", "-h", "--help":
		fmt.Fprint(c.stdout, usageText)
		return nil
	case "login":
		return c.runLogin(ctx, rest)
	case "logout":
		return c.runLogout(ctx, rest)
	case "whoami":
		return c.runWhoami(ctx, rest)
	}

	if c.service == nil {
		return errors.New("console is not connected to an API client")
	}

	switch command {
	case "dashboard":
		return c.runDashboard(ctx, rest)
	case "kyc":
		return c.runKYC(ctx, rest)
	case "users":
		return c.runUsers(ctx, rest)
	case "technicians":
		return c.runTechnicians(ctx, rest)
	case "categories":
		return c.runCategories(ctx, rest)
	case "settings":
		return c.runSettings(ctx, rest)
	case "services":
		return c.runServices(ctx, rest)
	case "appointments":
		return c.runAppointments(ctx, rest)
	case "payments":
		return c.runPayments(ctx, rest)
	case "system":
		return c.runSystem(ctx, rest)
	default:
		return usagef("unknown command %q", command)
	}
}

func (c *Console) exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var denied *admin.AccessDeniedError
	switch {
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(c.stderr, "%s\nRun `konnect-admin help` for usage.\n", err)
		return ExitUsage
	case errors.Is(err, admin.ErrNoSession), errors.Is(err, admin.ErrSessionInvalid), errors.Is(err, ErrLoginRequired):
		if !c.redirected {
			fmt.Fprintf(c.stderr, "%s. Sign in via %s, then run `konnect-admin login`.\n", err, c.loginPath)
		}
		return ExitLoginRequired
	case errors.As(err, &denied):
		if !c.denied {
			c.ShowAccessDenied(denied.Path)
		}
		if denied.Message != "" {
			fmt.Fprintf(c.stderr, "Server said: %s\n", denied.Message)
		}
		return ExitAccessDenied
	case client.IsTransport(err):
		fmt.Fprintf(c.stderr, "error: could not reach the API: %s\n", err)
		fmt.Fprintln(c.stderr, "If this keeps happening, run `konnect-admin logout` to clear the stored session and sign in again.")
		return ExitError
	default:
		fmt.Fprintf(c.stderr, "error: %s\n", err)
		return ExitError
	}
}

// usagef builds an ErrUsage-wrapped error
func usagef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUsage, format, args...)
}

// subcommand splits "<sub> args..." and reports a usage error when missing
func subcommand(group string, args []string, valid ...string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, usagef("%s requires a subcommand: %s", group, strings.Join(valid, "|"))
	}

	for _, candidate := range valid {
		if args[0] == candidate {
			return args[0], args[1:], nil
		}
	}

	return "", nil, usagef("unknown %s subcommand %q (expected %s)", group, args[0], strings.Join(valid, "|"))
}

// parse parses flags that may appear before, between or after positional arguments
func (c *Console) parse(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(c.stderr)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, errors.Wrap(ErrUsage, err.Error())
		}

		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// parseID parses flags and requires exactly one positional identifier
func (c *Console) parseID(fs *flag.FlagSet, args []string) (string, error) {
	positional, err := c.parse(fs, args)
	if err != nil {
		return "", err
	}
	if len(positional) != 1 {
		return "", usagef("%s expects exactly one ID argument", fs.Name())
	}

	return positional[0], nil
}

// parseNone parses flags and rejects positional arguments
func (c *Console) parseNone(fs *flag.FlagSet, args []string) error {
	positional, err := c.parse(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return usagef("%s takes no arguments", fs.Name())
	}

	return nil
}

const usageText = `Usage: konnect-admin [--json] <command> [subcommand] [flags]

Session
  login [--token TOKEN] [--verify]      store a token issued by the web sign-in (reads stdin without --token)
  logout                                 remove the stored token
  whoami [--verify]                      show the identity in the stored token

Review
  dashboard                              overview, KYC counters and recent submissions
  kyc stats
  kyc pending [--page N] [--limit N] [--status S] [--match TEXT]
  kyc show ID                            find a technician among pending submissions
  kyc approve ID [--notes TEXT]
  kyc reject ID --notes TEXT
  kyc status ID

Accounts
  users list [--page N] [--limit N] [--role R] [--status active|inactive] [--search TEXT] [--match TEXT]
  users show ID
  users update ID [--username U] [--email E] [--role R] [--active true|false]
  users delete ID --yes
  technicians list [--page N] [--limit N] [--status S] [--search TEXT] [--match TEXT]
  technicians show ID
  technicians update ID [--verification S] [--availability S] [--category ID] [--location L]

Catalog
  categories list | show ID | delete ID --yes
  categories create --name NAME [--description D] [--active=false]
  categories update ID --name NAME [--description D] [--active=false]
  settings show
  settings update [--app-name S] [--support-email E] [--max-technicians N] [--kyc-auto-approve B] [--maintenance B] [--booking-days N]
  services list

Bookings
  appointments list [--status S] | show ID
  appointments update ID [--status S] [--technician ID] [--notes TEXT] [--scheduled-at RFC3339]
  payments list [--status S] | show ID

System
  system overview | health | legacy-stats
  system analytics [--period 30d] | appointment-analytics [--period 30d]

  sandbox                                run a local stand-in API (see SANDBOX_* variables)

Exit status: 0 ok, 1 error, 2 usage, 3 sign-in required, 4 access denied.
`
