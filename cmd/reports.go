package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/report"
	"github.com/google/subcommands"
)

// windowCmd displays the windows of a focus.
type windowCmd struct {
	windowFlags
}

func (*windowCmd) Name() string     { return "window" }
func (*windowCmd) Synopsis() string { return "display the current and shadow windows of a focus" }
func (*windowCmd) Usage() string {
	return `wlt window [-focus <focus>] [-year <year>] [-from <date> -to <date>]

  Displays the exact dates of the current and shadow windows.
`
}

func (c *windowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// windows do not need the workbook
	printMarkdown(report.New(cfg, nil).WindowsMarkdown(q))
	return subcommands.ExitSuccess
}

// networthCmd displays the net worth attribution.
type networthCmd struct {
	windowFlags
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display the net worth and its attribution" }
func (*networthCmd) Usage() string {
	return `wlt networth [-focus <focus>] [-year <year>]

  Displays the net worth, its assets, and how its change over the window
  splits into net contributions and market gain.
`
}

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, status := loadReports()
	if status != subcommands.ExitSuccess {
		return status
	}
	md, err := b.NetWorthMarkdown(q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing net worth: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// performanceCmd displays the portfolio attribution.
type performanceCmd struct {
	windowFlags
	live float64
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display the portfolio performance" }
func (*performanceCmd) Usage() string {
	return `wlt performance [-focus <focus>] [-year <year>] [-live <value>]

  Displays contributions, market alpha, return, max drawdown and growth
  velocity of the portfolio over the window.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.Float64Var(&c.live, "live", 0, "Current value of the portfolio, replacing the last logged valuation")
}

func (c *performanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, status := loadReports()
	if status != subcommands.ExitSuccess {
		return status
	}
	var live *wealth.Money
	if c.live != 0 {
		v := wealth.M(c.live, b.Config.Currency)
		live = &v
	}
	printMarkdown(b.PerformanceMarkdown(q, live))
	return subcommands.ExitSuccess
}

// positionsCmd displays the trade lots.
type positionsCmd struct {
	open bool
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display trade lots grouped by ticker" }
func (*positionsCmd) Usage() string {
	return `wlt positions [-open]

  Displays the net quantity and average cost of every ticker traded.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.open, "open", false, "Only display open positions")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, status := loadReports()
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(b.PositionsMarkdown(c.open))
	return subcommands.ExitSuccess
}

// spendingCmd displays the spending hierarchy.
type spendingCmd struct {
	windowFlags
	metric string
	leaves string
	pulse  bool
}

func (*spendingCmd) Name() string     { return "spending" }
func (*spendingCmd) Synopsis() string { return "display the spending hierarchy" }
func (*spendingCmd) Usage() string {
	return `wlt spending [-focus <focus>] [-metric value|count] [-leaves merchant|month] [-pulse]

  Displays spending by category, subcategory and merchant, with the
  variance of each category to its previous twelve months.
`
}

func (c *spendingCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.StringVar(&c.metric, "metric", "value", "Rank nodes by value or by count")
	f.StringVar(&c.leaves, "leaves", "merchant", "Leaves of subcategories: merchant or month")
	f.BoolVar(&c.pulse, "pulse", false, "Rank the top merchants regardless of categories")
}

func (c *spendingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	opts := report.SpendingOptions{Pulse: c.pulse}
	if opts.Metric, err = wealth.ParseMetric(c.metric); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if opts.Leaves, err = wealth.ParseLeafMode(c.leaves); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, status := loadReports()
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(b.SpendingMarkdown(q, opts))
	return subcommands.ExitSuccess
}

// flowCmd displays the spending flow of a drill path.
type flowCmd struct {
	windowFlags
	sort    string
	rolling int
}

func (*flowCmd) Name() string     { return "flow" }
func (*flowCmd) Synopsis() string { return "compare spending flows to the shadow window" }
func (*flowCmd) Usage() string {
	return `wlt flow [-focus <focus>] [-sort total|variance] [-rolling <months>] [<category> [<subcategory>]]

  Compares spending of the current and shadow windows one level below the
  drill path, and displays the monthly trend.
`
}

func (c *flowCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.StringVar(&c.sort, "sort", "total", "Order of groups: total or variance")
	f.IntVar(&c.rolling, "rolling", wealth.DefaultRollingMonths, "Months of the trend rolling average")
}

func (c *flowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "Error: at most a category and a subcategory, got %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	opts := wealth.FlowOptions{Path: f.Args(), RollingMonths: c.rolling}
	if opts.Sort, err = wealth.ParseSortMode(c.sort); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, status := loadReports()
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(b.FlowMarkdown(q, opts))
	return subcommands.ExitSuccess
}
