package wealth

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Windows is the pair of ranges a report compares: the Current window and
// the Shadow window, a comparable prior period.
type Windows struct {
	Current Range
	Shadow  Range
}

// LogicalToday returns the date to use as "today" while looking at year.
// For any year other than the present one, it is December 31st of that year,
// so that archived years never leak dates beyond their end.
func LogicalToday(year int, today Date) Date {
	if year == 0 || year == today.Year() {
		return today
	}
	return NewDate(year, time.December, 31)
}

// Resolve computes the current and shadow windows of focus for the selected
// year (0 means the year of today). custom is only used by the Custom focus,
// a zero custom range falls back to YearToDate, and so does an unknown focus.
// Quarters are calendar quarters, see Resolver for fiscal quarters.
func Resolve(focus Focus, custom Range, year int, today Date) Windows {
	return resolve(focus, custom, year, today, time.January)
}

// InWindow reports whether on is in the current window of focus.
func InWindow(on Date, focus Focus, custom Range, year int, today Date) bool {
	return Resolve(focus, custom, year, today).Current.Contains(on)
}

func resolve(focus Focus, custom Range, year int, today Date, fiscalStart time.Month) Windows {
	if year == 0 {
		year = today.Year()
	}
	today = LogicalToday(year, today)

	switch focus {
	case MonthToDate:
		current := Range{From: today.StartOf(Monthly), To: today}
		return Windows{Current: current, Shadow: shiftMonths(current, -1)}

	case QuarterToDate:
		start := fiscalQuarterStart(today, fiscalStart)
		current := Range{From: start, To: today}
		return Windows{Current: current, Shadow: sameLengthFrom(start.AddMonths(-3), current)}

	case YearToDate:
		current := Range{From: NewDate(year, time.January, 1), To: today}
		return Windows{Current: current, Shadow: shiftMonths(current, -12)}

	case Rolling12Months:
		return Windows{
			Current: Range{From: today.AddMonths(-12), To: today},
			Shadow:  Range{From: today.AddMonths(-24), To: today.AddMonths(-12)},
		}

	case FullYear:
		return Windows{
			Current: Yearly.Range(NewDate(year, time.January, 1)),
			Shadow:  Yearly.Range(NewDate(year-1, time.January, 1)),
		}

	case Custom:
		if custom.IsZero() {
			return resolve(YearToDate, custom, year, today, fiscalStart)
		}
		current := NewRange(custom.From, custom.To)
		n := current.Len()
		return Windows{
			Current: current,
			Shadow:  Range{From: current.From.Add(-n), To: current.From.Add(-1)},
		}

	default:
		// unknown foci are resolved as YearToDate
		return resolve(YearToDate, custom, year, today, fiscalStart)
	}
}

// shiftMonths moves r by n months. The shifted end never reaches r.From.
func shiftMonths(r Range, n int) Range {
	shifted := Range{From: r.From.AddMonths(n), To: r.To.AddMonths(n)}
	if n < 0 && !shifted.To.Before(r.From) {
		shifted.To = r.From.Add(-1)
	}
	return shifted
}

// sameLengthFrom returns a range starting at from, as long as r, ending
// before r starts.
func sameLengthFrom(from Date, r Range) Range {
	to := from.Add(r.Len() - 1)
	if !to.Before(r.From) {
		to = r.From.Add(-1)
	}
	return Range{From: from, To: to}
}

// fiscalQuarterStart returns the first day of the quarter containing d, when
// the fiscal year starts on fiscalStart.
func fiscalQuarterStart(d Date, fiscalStart time.Month) Date {
	if fiscalStart < time.January || fiscalStart > time.December {
		fiscalStart = time.January
	}
	offset := (int(d.Month()) - int(fiscalStart) + 12) % 12
	return NewDate(d.Year(), d.Month()-time.Month(offset%3), 1)
}

// Resolver resolves windows and memoizes them.
//
// The cache key includes the logical today, so a long running Resolver
// never serves the windows of a previous day.
type Resolver struct {
	// Clock returns today's date, defaults to Today.
	Clock func() Date
	// FiscalYearStart is the first month of the fiscal year, used by quarters.
	FiscalYearStart time.Month

	once  sync.Once
	cache *cache.Cache
}

// NewResolver creates a Resolver for a fiscal year starting on fiscalStart.
func NewResolver(fiscalStart time.Month) *Resolver {
	return &Resolver{
		Clock:           Today,
		FiscalYearStart: fiscalStart,
		cache:           cache.New(24*time.Hour, time.Hour),
	}
}

// Resolve is like the package level Resolve, using the resolver's clock and fiscal year.
// A zero Resolver uses Today and a fiscal year starting in January.
func (r *Resolver) Resolve(focus Focus, custom Range, year int) Windows {
	r.once.Do(func() {
		if r.cache == nil {
			r.cache = cache.New(24*time.Hour, time.Hour)
		}
	})
	clock := r.Clock
	if clock == nil {
		clock = Today
	}
	today := clock()
	key := fmt.Sprintf("%s|%s|%d|%s|%d", focus, custom, year, LogicalToday(year, today), r.FiscalYearStart)
	if w, ok := r.cache.Get(key); ok {
		return w.(Windows)
	}
	w := resolve(focus, custom, year, today, r.FiscalYearStart)
	r.cache.Set(key, w, cache.DefaultExpiration)
	return w
}

// InWindow reports whether on is in the current window of focus.
func (r *Resolver) InWindow(on Date, focus Focus, custom Range, year int) bool {
	return r.Resolve(focus, custom, year).Current.Contains(on)
}
