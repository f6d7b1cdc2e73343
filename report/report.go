// Package report assembles the wealth reports from a workbook and a
// configuration, and renders them as markdown.
//
// It is shared by the command line and by the assistant tools, so both
// always compute the same figures.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/config"
	"github.com/etnz/wealth/renderer"
	"github.com/etnz/wealth/sheet"
)

// Query selects the windows of a report.
type Query struct {
	Focus  wealth.Focus
	Custom wealth.Range // only used by the Custom focus
	Year   int          // 0 for the current year
}

// Builder builds reports out of a decoded workbook.
type Builder struct {
	Config   *config.Config
	Workbook *sheet.Workbook
	Resolver *wealth.Resolver
}

// New creates a Builder for a workbook. Amounts of the workbook are
// converted to the primary currency of the configuration.
func New(cfg *config.Config, wb *sheet.Workbook) *Builder {
	return &Builder{
		Config:   cfg,
		Workbook: wb.Convert(cfg.ExchangeRates(), cfg.Currency),
		Resolver: wealth.NewResolver(cfg.FiscalYearStart()),
	}
}

// Load decodes the workbook of the configuration and creates its Builder.
func Load(cfg *config.Config) (*Builder, error) {
	f, err := os.Open(cfg.Workbook)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook %q: %w", cfg.Workbook, err)
	}
	defer f.Close()

	wb, err := sheet.Decode(f, sheet.DefaultTables().With(cfg.Tables), cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("could not decode workbook %q: %w", cfg.Workbook, err)
	}
	return New(cfg, wb), nil
}

// Windows resolves the windows of q.
func (b *Builder) Windows(q Query) wealth.Windows {
	return b.Resolver.Resolve(q.Focus, q.Custom, q.Year)
}

// WindowsMarkdown renders the windows of q.
func (b *Builder) WindowsMarkdown(q Query) string {
	return renderer.WindowsMarkdown(q.Focus, b.Windows(q))
}

// NetWorth returns the net worth attribution of the current window of q.
//
// A valuation overflow is logged and reported with a zero return, it is not
// an error.
func (b *Builder) NetWorth(q Query) (wealth.Anchor, wealth.NetWorthAttribution, error) {
	w := b.Windows(q)
	current := wealth.NetWorth(b.Workbook.Assets, b.Config.ExchangeRates(), b.Config.Currency)

	history := slices.Clone(b.Workbook.NetWorth)
	slices.SortStableFunc(history, func(x, y wealth.NetWorthPoint) int { return x.Date.Compare(y.Date) })

	// flows between the anchor and the window start count too, only later
	// ones are excluded
	income, expenses := b.Workbook.Flows()
	income = until(income, w.Current.To, func(e wealth.IncomeEntry) wealth.Date { return e.Date })
	expenses = until(expenses, w.Current.To, func(e wealth.ExpenseEntry) wealth.Date { return e.Date })

	anchor := wealth.ResolveAnchor(history, w.Current, current, income, expenses)
	attr, err := wealth.AttributeNetWorth(current, anchor, income, expenses)
	if errors.Is(err, wealth.ErrValuationOverflow) {
		slog.Warn("net worth return is not displayable", "error", err)
		err = nil
	}
	return anchor, attr, err
}

// NetWorthMarkdown renders the net worth attribution of q.
func (b *Builder) NetWorthMarkdown(q Query) (string, error) {
	anchor, attr, err := b.NetWorth(q)
	if err != nil {
		return "", err
	}
	return renderer.NetWorthMarkdown(b.Windows(q), anchor, attr, b.Workbook.Assets), nil
}

// Performance returns the portfolio attribution of the current window of q.
// live, if not nil, replaces the last logged valuation.
func (b *Builder) Performance(q Query, live *wealth.Money) wealth.PortfolioAttribution {
	w := b.Windows(q)
	series := inWindow(b.Workbook.PortfolioLog, w.Current, func(e wealth.PortfolioLogEntry) wealth.Date { return e.Date })
	slices.SortStableFunc(series, func(x, y wealth.PortfolioLogEntry) int { return x.Date.Compare(y.Date) })
	trades := inWindow(b.Workbook.Trades, w.Current, func(t wealth.Trade) wealth.Date { return t.Date })
	return wealth.AttributePortfolio(series, trades, live)
}

// PerformanceMarkdown renders the portfolio attribution of q.
func (b *Builder) PerformanceMarkdown(q Query, live *wealth.Money) string {
	return renderer.PerformanceMarkdown(b.Windows(q), b.Performance(q, live))
}

// Positions returns all positions, or only the open ones.
func (b *Builder) Positions(open bool) []wealth.Position {
	positions := wealth.NewPositions(b.Workbook.Trades)
	if open {
		positions = wealth.OpenPositions(positions)
	}
	return positions
}

// PositionsMarkdown renders the positions.
func (b *Builder) PositionsMarkdown(open bool) string {
	return renderer.PositionsMarkdown(b.Positions(open))
}

// SpendingOptions are the presentation choices of a spending hierarchy.
type SpendingOptions struct {
	Metric wealth.Metric
	Leaves wealth.LeafMode
	Pulse  bool
}

// Spending builds the spending hierarchy of the current window of q.
func (b *Builder) Spending(q Query, opts SpendingOptions) *wealth.HierarchyNode {
	w := b.Windows(q)
	h := b.Config.HierarchyOptions(w.Current)
	h.Metric, h.Leaves, h.Pulse = opts.Metric, opts.Leaves, opts.Pulse
	return wealth.BuildHierarchy(b.Workbook.Journal, b.Workbook.GeneralTimeline(), h)
}

// SpendingMarkdown renders the spending hierarchy of q.
func (b *Builder) SpendingMarkdown(q Query, opts SpendingOptions) string {
	return renderer.HierarchyMarkdown(b.Spending(q, opts), b.Windows(q))
}

// Flow builds the spending flow chart of q.
func (b *Builder) Flow(q Query, opts wealth.FlowOptions) wealth.FlowChart {
	return wealth.BuildFlow(b.expenseRows(), b.Windows(q), opts)
}

// FlowMarkdown renders the spending flow chart of q.
func (b *Builder) FlowMarkdown(q Query, opts wealth.FlowOptions) string {
	return renderer.FlowMarkdown(b.Flow(q, opts), opts.Path, b.Windows(q))
}

// expenseRows returns the journal and the expense rows of the general timeline.
func (b *Builder) expenseRows() []wealth.Transaction {
	var rows []wealth.Transaction
	for _, e := range b.Workbook.Journal {
		rows = append(rows, e.Transaction())
	}
	for _, t := range b.Workbook.GeneralTimeline() {
		if t.Flow == wealth.Expense {
			rows = append(rows, t)
		}
	}
	return rows
}

func inWindow[T any](items []T, r wealth.Range, date func(T) wealth.Date) []T {
	var out []T
	for _, item := range items {
		if r.Contains(date(item)) {
			out = append(out, item)
		}
	}
	return out
}

func until[T any](items []T, end wealth.Date, date func(T) wealth.Date) []T {
	var out []T
	for _, item := range items {
		if !date(item).After(end) {
			out = append(out, item)
		}
	}
	return out
}
