package console

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pkg/errors"

	"github.com/techipro/konnect-admin/session"
)

func (c *Console) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	token := fs.String("token", "", "session token issued by the web sign-in")
	verify := fs.Bool("verify", false, "confirm administrator access after storing the token")
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	value := strings.TrimSpace(*token)
	if value == "" {
		read, err := readLine(c.stdin)
		if err != nil {
			return errors.Wrap(err, "read token from stdin")
		}
		value = read
	}
	if value == "" {
		return usagef("login needs a token via --token or stdin")
	}

	claims, claimsErr := session.ParseClaims(value)
	if claimsErr == nil {
		if err := claims.Valid(); err != nil {
			return errors.Wrap(err, "refusing to store token")
		}
	}

	if err := c.sess.Login(ctx, value); err != nil {
		return err
	}

	if claimsErr != nil {
		c.logger.Debug().Err(claimsErr).Msg("stored token is not a readable JWT")
		fmt.Fprintln(c.stdout, "Token stored.")
	} else {
		fmt.Fprintf(c.stdout, "Signed in as %s.\n", claims.DisplayName())
	}

	if *verify {
		if c.service == nil {
			return errors.New("console is not connected to an API client")
		}
		if err := c.service.CheckAccess(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "Administrator access confirmed.")
	}

	return nil
}

func (c *Console) runLogout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	if err := c.sess.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.stdout, "Signed out.")
	return nil
}

// whoami reads the stored token locally; only --verify contacts the API
func (c *Console) runWhoami(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	verify := fs.Bool("verify", false, "confirm administrator access with the API")
	if err := c.parseNone(fs, args); err != nil {
		return err
	}

	token, ok, err := c.sess.Token(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLoginRequired
	}

	claims, err := session.ParseClaims(token)
	if err != nil {
		fmt.Fprintln(c.stdout, "A session token is stored but its contents are not readable.")
	} else {
		expires := "never"
		if expiry, ok := claims.Expiry(); ok {
			remaining := time.Until(expiry)
			if remaining <= 0 {
				expires = "expired " + durafmt.ParseShort(-remaining).String() + " ago"
			} else {
				expires = "in " + durafmt.ParseShort(remaining).String()
			}
		}

		view := struct {
			Name    string `json:"name"`
			Email   string `json:"email,omitempty"`
			Role    string `json:"role,omitempty"`
			Subject string `json:"sub,omitempty"`
			Expires string `json:"expires"`
		}{claims.DisplayName(), claims.Email, claims.Role, claims.Subject, expires}

		err = c.output(view, func(w io.Writer) {
			row(w, "Name", view.Name)
			row(w, "Email", orDash(view.Email))
			row(w, "Role", orDash(view.Role))
			row(w, "ID", orDash(view.Subject))
			row(w, "Expires", view.Expires)
		})
		if err != nil {
			return err
		}
	}

	if *verify {
		if c.service == nil {
			return errors.New("console is not connected to an API client")
		}
		if err := c.service.CheckAccess(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "Administrator access confirmed.")
	}

	return nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}

	return "", scanner.Err()
}
