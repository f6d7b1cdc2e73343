package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/report"
)

// windowFlags are the flags selecting the windows of a report.
type windowFlags struct {
	focus    string
	from, to string
	year     int
}

func (w *windowFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&w.focus, "focus", "ytd", "Window of the report: mtd, qtd, ytd, r12, year or custom")
	f.StringVar(&w.from, "from", "", "First day of a custom window. See the windows topic.")
	f.StringVar(&w.to, "to", "", "Last day of a custom window.")
	f.IntVar(&w.year, "year", 0, "Selected year, the current year by default")
}

func (w *windowFlags) query() (report.Query, error) {
	focus, err := wealth.ParseFocus(w.focus)
	if err != nil {
		return report.Query{}, err
	}
	q := report.Query{Focus: focus, Year: w.year}
	if w.from != "" || w.to != "" {
		if focus != wealth.Custom {
			return q, fmt.Errorf("-from and -to require -focus custom")
		}
		from, err := wealth.ParseDate(w.from)
		if err != nil {
			return q, fmt.Errorf("invalid -from: %w", err)
		}
		to, err := wealth.ParseDate(w.to)
		if err != nil {
			return q, fmt.Errorf("invalid -to: %w", err)
		}
		q.Custom = wealth.NewRange(from, to)
	}
	return q, nil
}
