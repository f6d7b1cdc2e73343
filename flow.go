package wealth

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode selects the order of flow groups.
type SortMode int

const (
	// SortTotal sorts groups by decreasing current total.
	SortTotal SortMode = iota
	// SortVariance sorts groups by decreasing absolute delta.
	SortVariance
)

func (s SortMode) String() string {
	if s == SortVariance {
		return "variance"
	}
	return "total"
}

// ParseSortMode parses "total" or "variance".
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total":
		return SortTotal, nil
	case "variance", "delta":
		return SortVariance, nil
	default:
		return 0, fmt.Errorf("unknown sort mode %q", s)
	}
}

// DefaultRollingMonths is the length of the trend rolling average.
const DefaultRollingMonths = 3

// FlowOptions configures BuildFlow.
type FlowOptions struct {
	Path          []string // drill path: a category, then a subcategory
	Sort          SortMode
	RollingMonths int // DefaultRollingMonths when 0
}

// FlowGroup is a bar of the flow chart.
type FlowGroup struct {
	Name    string
	Current Money
	Shadow  Money
	Delta   Money   // Current - Shadow
	Share   Percent // of the current total
}

// TrendPoint is a month of the trend of the drilled node.
type TrendPoint struct {
	Month          Date
	Current        Money
	Shadow         Money // same month offset in the shadow window
	RollingAverage Money
}

// FlowChart is the aggregation of a timeline one level below a drill path.
type FlowChart struct {
	Depth   int // 0 categories, 1 subcategories, 2 months
	Current Money
	Shadow  Money
	Groups  []FlowGroup
	Trend   []TrendPoint
}

// BuildFlow groups rows one level below opts.Path for the current and the
// shadow windows, and computes the monthly trend of the drilled node.
//
// rows is the filtered timeline, it can mix ledger summary rows and
// itemized rows: they are reconciled first.
func BuildFlow(rows []Transaction, w Windows, opts FlowOptions) FlowChart {
	if opts.RollingMonths <= 0 {
		opts.RollingMonths = DefaultRollingMonths
	}
	depth := min(len(opts.Path), 2)

	var node []Transaction
	for _, t := range Reconcile(rows) {
		if matchesPath(t, opts.Path[:depth]) {
			node = append(node, t)
		}
	}

	chart := FlowChart{Depth: depth}
	groups := make(map[string]*FlowGroup)
	var order []string
	group := func(name string) *FlowGroup {
		key := normalizeName(name)
		g, ok := groups[key]
		if !ok {
			g = &FlowGroup{Name: name}
			groups[key] = g
			order = append(order, key)
		}
		return g
	}

	if depth == 2 {
		for m := range w.Current.Periods(Monthly) {
			group(m.From.MonthLabel())
		}
	}

	for _, t := range node {
		inCurrent, inShadow := w.Current.Contains(t.Date), w.Shadow.Contains(t.Date)
		if !inCurrent && !inShadow {
			continue
		}
		var name string
		switch depth {
		case 0:
			name = nonEmpty(t.Category, "Uncategorized")
		case 1:
			name = nonEmpty(t.SubCategory, "General")
		default:
			if inCurrent {
				name = t.Date.MonthLabel()
			} else {
				name = shadowToCurrent(t.Date, w).MonthLabel()
			}
		}
		g := group(name)
		if inCurrent {
			g.Current = g.Current.Add(t.Amount)
			chart.Current = chart.Current.Add(t.Amount)
		}
		if inShadow {
			g.Shadow = g.Shadow.Add(t.Amount)
			chart.Shadow = chart.Shadow.Add(t.Amount)
		}
	}

	for _, key := range order {
		g := groups[key]
		g.Delta = g.Current.Sub(g.Shadow)
		if chart.Current.IsPositive() {
			g.Share = Percent(Round(g.Current.AsFloat()/chart.Current.AsFloat()*100, 2))
		}
		chart.Groups = append(chart.Groups, *g)
	}
	sortGroups(chart.Groups, depth, opts.Sort)

	chart.Trend = trend(node, w, opts.RollingMonths)
	return chart
}

// matchesPath reports whether t belongs to the node of the drill path.
func matchesPath(t Transaction, path []string) bool {
	if len(path) > 0 && normalizeName(nonEmpty(t.Category, "Uncategorized")) != normalizeName(path[0]) {
		return false
	}
	if len(path) > 1 && normalizeName(nonEmpty(t.SubCategory, "General")) != normalizeName(path[1]) {
		return false
	}
	return true
}

func sortGroups(groups []FlowGroup, depth int, mode SortMode) {
	slices.SortStableFunc(groups, func(a, b FlowGroup) int {
		if depth == 2 {
			// month labels sort chronologically
			return cmp.Compare(b.Name, a.Name)
		}
		var c int
		if mode == SortVariance {
			c = b.Delta.Abs().value.Cmp(a.Delta.Abs().value)
		} else {
			c = b.Current.value.Cmp(a.Current.value)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// shadowToCurrent maps a date of the shadow window to the matching date of
// the current window. Windows starting on the same day of month are matched
// month by month, others by their offset in days. The result is clamped to
// the current window.
func shadowToCurrent(d Date, w Windows) Date {
	var mapped Date
	if w.Shadow.From.Day() == w.Current.From.Day() {
		mapped = d.AddMonths(w.Shadow.From.MonthsUntil(w.Current.From))
	} else {
		mapped = w.Current.From.Add(w.Shadow.From.DaysUntil(d))
	}
	switch {
	case mapped.Before(w.Current.From):
		return w.Current.From
	case mapped.After(w.Current.To):
		return w.Current.To
	}
	return mapped
}

// trend returns a point per month of the current window.
func trend(rows []Transaction, w Windows, rolling int) []TrendPoint {
	monthly := make(map[Date]Money)
	for _, t := range rows {
		m := t.Date.StartOf(Monthly)
		monthly[m] = monthly[m].Add(t.Amount)
	}

	var points []TrendPoint
	for m := range w.Current.Periods(Monthly) {
		p := TrendPoint{Month: m.From}
		for _, t := range rows {
			switch {
			case w.Current.Contains(t.Date) && m.Contains(t.Date):
				p.Current = p.Current.Add(t.Amount)
			case w.Shadow.Contains(t.Date) && m.Contains(shadowToCurrent(t.Date, w)):
				p.Shadow = p.Shadow.Add(t.Amount)
			}
		}
		var sum Money
		for k := range rolling {
			sum = sum.Add(monthly[m.From.AddMonths(-k)])
		}
		p.RollingAverage = sum.DivInt(rolling)
		points = append(points, p)
	}
	return points
}
