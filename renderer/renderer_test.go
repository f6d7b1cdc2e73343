package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/wealth"
)

func checkContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("markdown does not contain %q:\n%s", w, got)
		}
	}
}

var windows = wealth.Windows{
	Current: wealth.NewRange(wealth.NewDate(2024, 1, 1), wealth.NewDate(2024, 3, 31)),
	Shadow:  wealth.NewRange(wealth.NewDate(2023, 10, 1), wealth.NewDate(2023, 12, 31)),
}

func TestNow(t *testing.T) {
	t.Setenv("WEALTH_TESTING_NOW", "2024-03-31 10:00:00")
	if got := Now().Format("2006-01-02"); got != "2024-03-31" {
		t.Errorf("Now() = %s, want 2024-03-31", got)
	}
}

func TestWindowsMarkdown(t *testing.T) {
	t.Setenv("WEALTH_TESTING_NOW", "2024-03-31 10:00:00")
	got := WindowsMarkdown(wealth.QuarterToDate, windows)
	checkContains(t, got,
		"# Quarter-to-Date Window",
		"As of 2024-03-31 10:00:00",
		"2024-01-01", "2024-03-31", "91",
		"2023-10-01", "92",
	)
}

func TestNetWorthMarkdown(t *testing.T) {
	anchor := wealth.Anchor{Date: wealth.NewDate(2024, 1, 1), Value: wealth.M(10000, "USD"), Synthetic: true}
	a := wealth.NetWorthAttribution{
		StartValue:       wealth.M(10000, "USD"),
		EndValue:         wealth.M(14000, "USD"),
		NetContributions: wealth.M(3000, "USD"),
		MarketGain:       wealth.M(1000, "USD"),
		Return:           8.6957,
	}
	assets := []wealth.Asset{{Name: "Checking", Class: "Cash", Value: wealth.M(1234.5, "USD")}}
	got := NetWorthMarkdown(windows, anchor, a, assets)
	checkContains(t, got,
		"# Net Worth on 2024-03-31",
		"derived",
		"14,000.00", "+$3,000.00", "+$1,000.00", "+8.70%",
		"## Assets", "Checking", "1,234.50",
	)
}

func TestPerformanceMarkdown(t *testing.T) {
	a := wealth.PortfolioAttribution{
		StartValue:    wealth.M(1000, "USD"),
		EndValue:      wealth.M(1400, "USD"),
		Contributions: wealth.M(200, "USD"),
		MarketAlpha:   wealth.M(200, "USD"),
		AlphaReturn:   20,
		MaxDrawdown:   -20,
		Accounts: []wealth.AccountPerformance{
			{Account: "PEA", StartValue: wealth.M(1000, "USD"), EndValue: wealth.M(1400, "USD")},
		},
	}
	got := PerformanceMarkdown(windows, a)
	checkContains(t, got,
		"# Portfolio Performance 2024-01-01..2024-03-31",
		"Market Alpha", "+20.00%", "-20.00%",
		"## Accounts", "PEA", "+$400.00",
	)
}

func TestPositionsMarkdown(t *testing.T) {
	on := wealth.NewDate(2024, 1, 10)
	trades := []wealth.Trade{
		wealth.NewTrade("1", on, "ACME", wealth.Buy, wealth.Q(10), wealth.M(100, "USD"), wealth.M(0, "USD"), "PEA"),
		wealth.NewTrade("2", on, "OLD", wealth.Buy, wealth.Q(5), wealth.M(10, "USD"), wealth.M(0, "USD"), "PEA"),
		wealth.NewTrade("3", on, "OLD", wealth.Sell, wealth.Q(5), wealth.M(12, "USD"), wealth.M(0, "USD"), "PEA"),
	}
	got := PositionsMarkdown(wealth.NewPositions(trades))
	checkContains(t, got, "# Positions", "ACME", "open", "OLD", "exited", "$60.00")

	if got := PositionsMarkdown(nil); !strings.Contains(got, "No trades.") {
		t.Errorf("PositionsMarkdown(nil) = %q, want a no trades notice", got)
	}
}

func TestHierarchyMarkdown(t *testing.T) {
	v := wealth.Percent(120)
	root := &wealth.HierarchyNode{
		Name:  "Spending",
		Value: wealth.M(350, "USD"),
		Count: 2,
		Children: []*wealth.HierarchyNode{
			{
				Name:     "Food",
				Value:    wealth.M(350, "USD"),
				Count:    2,
				Variance: &v,
				IsShock:  true,
				Children: []*wealth.HierarchyNode{
					{
						Name:  "Groceries",
						Value: wealth.M(350, "USD"),
						Count: 2,
						Children: []*wealth.HierarchyNode{
							{Name: "Carrefour", Value: wealth.M(350, "USD"), Count: 2, IsJournalBacked: true},
						},
					},
				},
			},
			{Name: "Rent", IsSummaryNode: true, Unallocated: wealth.M(900, "USD")},
		},
	}
	got := HierarchyMarkdown(root, windows)
	checkContains(t, got,
		"# Spending 2024-01-01..2024-03-31",
		"+120.00% (shock)",
		"## Food",
		"Groceries / Carrefour",
		"Rent (ledger)", "$900.00",
	)
	if strings.Contains(got, "## Rent") {
		t.Errorf("a category without children has its own section:\n%s", got)
	}
}

func TestFlowMarkdown(t *testing.T) {
	chart := wealth.FlowChart{
		Depth:   1,
		Current: wealth.M(300, "USD"),
		Shadow:  wealth.M(200, "USD"),
		Groups: []wealth.FlowGroup{
			{Name: "Groceries", Current: wealth.M(300, "USD"), Shadow: wealth.M(200, "USD"), Delta: wealth.M(100, "USD"), Share: 100},
		},
		Trend: []wealth.TrendPoint{
			{Month: wealth.NewDate(2024, 1, 1), Current: wealth.M(100, "USD")},
		},
	}
	got := FlowMarkdown(chart, []string{"Food"}, windows)
	checkContains(t, got,
		"# Spending Flow: Food",
		"Groceries", "+$100.00", "100.00%",
		"## Trend", "2024-01",
	)
}
