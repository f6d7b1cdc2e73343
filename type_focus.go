package wealth

import (
	"fmt"
	"strings"
)

// Focus selects the temporal window of a report.
type Focus int

const (
	// MonthToDate is from the first day of the month to today.
	MonthToDate Focus = iota
	// QuarterToDate is from the first day of the fiscal quarter to today.
	QuarterToDate
	// YearToDate is from January 1st to today.
	YearToDate
	// Rolling12Months is the twelve months ending today.
	Rolling12Months
	// FullYear is the whole selected year.
	FullYear
	// Custom is an explicit range.
	Custom
)

func (f Focus) String() string {
	switch f {
	case MonthToDate:
		return "mtd"
	case QuarterToDate:
		return "qtd"
	case YearToDate:
		return "ytd"
	case Rolling12Months:
		return "r12"
	case FullYear:
		return "year"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Name returns the human name of the focus (e.g., "Month-to-Date").
func (f Focus) Name() string {
	switch f {
	case MonthToDate:
		return "Month-to-Date"
	case QuarterToDate:
		return "Quarter-to-Date"
	case YearToDate:
		return "Year-to-Date"
	case Rolling12Months:
		return "Rolling 12 Months"
	case FullYear:
		return "Full Year"
	case Custom:
		return "Custom Range"
	default:
		return "Unknown"
	}
}

// ParseFocus parses a focus from its short or long name.
func ParseFocus(s string) (Focus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mtd", "month-to-date", "month":
		return MonthToDate, nil
	case "qtd", "quarter-to-date", "quarter":
		return QuarterToDate, nil
	case "ytd", "year-to-date":
		return YearToDate, nil
	case "r12", "rolling-12-months", "rolling":
		return Rolling12Months, nil
	case "year", "full-year", "fy":
		return FullYear, nil
	case "custom":
		return Custom, nil
	default:
		return 0, fmt.Errorf("unknown focus: %q", s)
	}
}
