package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hako/durafmt"

	"github.com/techipro/konnect-admin/types"
)

// output prints v as indented JSON in --json mode, or calls table otherwise
func (c *Console) output(v interface{}, table func(w io.Writer)) error {
	if c.json {
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, string(encoded))
		return nil
	}

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	table(w)
	return w.Flush()
}

func row(w io.Writer, cells ...interface{}) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprint(cell)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func pageFooter(w io.Writer, info types.PageInfo, shown int) {
	if info.Total == 0 && info.Page == 0 {
		fmt.Fprintf(w, "\n%d shown\n", shown)
		return
	}
	fmt.Fprintf(w, "\npage %d of %d, %d shown, %d total\n", info.Page, maxInt(info.TotalPages, 1), shown, info.Total)
}

// ago renders a timestamp relative to now
func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	d := time.Since(t)
	if d < 0 {
		return "in " + durafmt.ParseShort(-d).String()
	}
	if d < time.Minute {
		return "just now"
	}
	return durafmt.ParseShort(d).String() + " ago"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func categoryName(ref *types.CategoryRef) string {
	if ref == nil {
		return "-"
	}
	return orDash(ref.Name)
}

func partyName(parties ...*types.Party) string {
	for _, party := range parties {
		if party == nil {
			continue
		}
		if party.Name != "" {
			return party.Name
		}
		if party.Username != "" {
			return party.Username
		}
	}
	return "-"
}

func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
