// Package renderer renders wealth reports as markdown.
package renderer

import (
	"os"
	"time"

	"github.com/etnz/wealth"
)

// Now is the current time used in reports.
// Tests can pin it with the WEALTH_TESTING_NOW environment variable.
func Now() time.Time {
	if s := os.Getenv("WEALTH_TESTING_NOW"); s != "" {
		t, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

func asOf() string {
	return "As of " + Now().Format("2006-01-02 15:04:05")
}

// variance formats an optional variance, flagging shocks.
func variance(p *wealth.Percent, shock bool) string {
	if p == nil {
		return "-"
	}
	if shock {
		return p.SignedString() + " (shock)"
	}
	return p.SignedString()
}

// moneyOrDash formats m, or "-" when it is zero.
func moneyOrDash(m wealth.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}
