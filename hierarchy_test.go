package wealth

import (
	"fmt"
	"testing"
)

var january = Range{From: day("2024-01-01"), To: day("2024-01-31")}

func food() ([]JournalEntry, []Transaction) {
	journal := []JournalEntry{
		{Date: day("2024-01-05"), Description: "Groceries Inc", Category: "Food", SubCategory: "Groceries", Amount: USD(200), Source: "card"},
		{Date: day("2024-01-12"), Description: "Cafe Co", Category: "Food", SubCategory: "Groceries", Amount: USD(150), Source: "card"},
	}
	timeline := []Transaction{
		{Date: day("2024-01-01"), Description: "Food", Category: "Food", Amount: USD(500), Source: "ledger"},
	}
	return journal, timeline
}

func TestBuildHierarchy_Unallocated(t *testing.T) {
	journal, timeline := food()
	root := BuildHierarchy(journal, timeline, HierarchyOptions{Window: january})

	cat := root.Child("Food")
	if cat == nil {
		t.Fatalf("BuildHierarchy() has no Food category: %+v", root.Children)
	}
	if want := USD(350); !cat.Value.Equal(want) {
		t.Errorf("Food.Value = %v, want %v", cat.Value, want)
	}
	if want := USD(150); !cat.Unallocated.Equal(want) {
		t.Errorf("Food.Unallocated = %v, want %v", cat.Unallocated, want)
	}
	if want := USD(150); !root.Unallocated.Equal(want) {
		t.Errorf("root.Unallocated = %v, want %v", root.Unallocated, want)
	}
	if want := USD(350); !root.Value.Equal(want) {
		t.Errorf("root.Value = %v, want %v", root.Value, want)
	}
	if !cat.IsJournalBacked || cat.IsSummaryNode {
		t.Errorf("Food IsJournalBacked, IsSummaryNode = %v, %v, want true, false", cat.IsJournalBacked, cat.IsSummaryNode)
	}
	if want := USD(200); !cat.MaxHit.Equal(want) {
		t.Errorf("Food.MaxHit = %v, want %v", cat.MaxHit, want)
	}

	sub := cat.Child("Groceries")
	if sub == nil || len(sub.Children) != 2 {
		t.Fatalf("Food/Groceries = %+v, want 2 merchants", sub)
	}
	if sub.Children[0].Name != "Groceries Inc" || sub.Children[1].Name != "Cafe Co" {
		t.Errorf("Food/Groceries merchants = %q, %q, want Groceries Inc, Cafe Co", sub.Children[0].Name, sub.Children[1].Name)
	}
}

func TestBuildHierarchy_SubCategoryUnallocated(t *testing.T) {
	timeline := []Transaction{
		{Date: day("2024-01-01"), Description: "Fuel", Category: "Transport", SubCategory: "Fuel", Amount: USD(80)},
		{Date: day("2024-01-01"), Description: "Train", Category: "Transport", SubCategory: "Train", Amount: USD(60)},
		{Date: day("2024-01-09"), Description: "SNCF 1234", Category: "Transport", SubCategory: "Train", Amount: USD(60)},
	}
	root := BuildHierarchy(nil, timeline, HierarchyOptions{Window: january})

	fuel := root.Child("Transport").Child("Fuel")
	if fuel == nil || !fuel.IsSummaryNode || !fuel.Unallocated.Equal(USD(80)) || len(fuel.Children) != 0 {
		t.Errorf("Transport/Fuel = %+v, want a summary node with 80 unallocated", fuel)
	}
	train := root.Child("Transport").Child("Train")
	if train == nil || !train.Unallocated.IsZero() || !train.Value.Equal(USD(60)) {
		t.Errorf("Transport/Train = %+v, want 60 itemized and nothing unallocated", train)
	}
	if want := USD(80); !root.Unallocated.Equal(want) {
		t.Errorf("root.Unallocated = %v, want %v", root.Unallocated, want)
	}
}

// checkSums walks the tree asserting that parents are the sum of their children.
func checkSums(t *testing.T, n *HierarchyNode) {
	t.Helper()
	if len(n.Children) == 0 {
		return
	}
	var value Money
	var count int
	for _, c := range n.Children {
		value = value.Add(c.Value)
		count += c.Count
		checkSums(t, c)
	}
	if !n.Value.Equal(value) || n.Count != count {
		t.Errorf("node %q = %v (%d), children sum to %v (%d)", n.ID, n.Value, n.Count, value, count)
	}
}

// checkNoSummaryLeaf asserts that no leaf is named after its parent.
func checkNoSummaryLeaf(t *testing.T, n *HierarchyNode) {
	t.Helper()
	for _, c := range n.Children {
		if len(c.Children) == 0 && normalizeName(c.Name) == normalizeName(n.Name) {
			t.Errorf("leaf %q is named after its parent", c.ID)
		}
		checkNoSummaryLeaf(t, c)
	}
}

func tailTimeline() []Transaction {
	timeline := []Transaction{
		{Date: day("2024-01-01"), Description: "Groceries", Category: "Food", SubCategory: "Groceries", Amount: USD(2000)},
		{Date: day("2024-01-01"), Description: "Food", Category: "Food", Amount: USD(3000)},
		{Date: day("2024-01-03"), Description: "Big Store", Category: "Food", SubCategory: "Groceries", Amount: USD(1000)},
		{Date: day("2024-01-04"), Description: "Rent Co", Category: "Housing", SubCategory: "Rent", Amount: USD(1500)},
	}
	for i := range 6 {
		timeline = append(timeline, Transaction{
			Date:        day("2024-01-10").Add(i),
			Description: fmt.Sprintf("Corner Shop %c", 'A'+i),
			Category:    "Food",
			SubCategory: "Groceries",
			Amount:      USD(2),
		})
	}
	timeline = append(timeline, Transaction{Date: day("2024-01-20"), Description: "Kiosk", Category: "Misc", SubCategory: "Press", Amount: USD(3)})
	timeline = append(timeline, Transaction{Date: day("2024-01-21"), Description: "Stamp", Category: "Post", SubCategory: "Mail", Amount: USD(1)})
	return timeline
}

func TestBuildHierarchy_Invariants(t *testing.T) {
	for _, metric := range []Metric{ByValue, ByCount} {
		for _, leaves := range []LeafMode{LeafMerchant, LeafMonth} {
			t.Run(fmt.Sprintf("%v-%v", metric, leaves), func(t *testing.T) {
				root := BuildHierarchy(nil, tailTimeline(), HierarchyOptions{Window: january, Metric: metric, Leaves: leaves})
				checkSums(t, root)
				checkNoSummaryLeaf(t, root)
			})
		}
	}
}

func TestBuildHierarchy_Collapse(t *testing.T) {
	root := BuildHierarchy(nil, tailTimeline(), HierarchyOptions{Window: january})

	// Misc (3) and Post (1) are below 1.5% of 2516.
	other := root.Child(OtherNodesName)
	if other == nil {
		t.Fatalf("root has no %q child: %+v", OtherNodesName, root.Children)
	}
	if !other.Value.Equal(USD(4)) || other.Count != 2 || len(other.Children) != 2 {
		t.Errorf("root/Other Nodes = %v (%d) with %d children, want 4 (2) with 2", other.Value, other.Count, len(other.Children))
	}
	if last := root.Children[len(root.Children)-1]; last != other {
		t.Errorf("last root child = %q, want %q", last.Name, OtherNodesName)
	}

	groceries := root.Child("Food").Child("Groceries")
	tail := groceries.Child(OtherNodesName)
	if tail == nil || !tail.Value.Equal(USD(12)) || tail.Count != 6 || !tail.MaxHit.Equal(USD(2)) {
		t.Errorf("Food/Groceries/Other Nodes = %+v, want 12 (6) with a max hit of 2", tail)
	}
	if groceries.Child("Big Store") == nil {
		t.Errorf("Food/Groceries/Big Store was collapsed")
	}
}

func TestBuildHierarchy_SingleMinorChildIsKept(t *testing.T) {
	timeline := []Transaction{
		{Date: day("2024-01-03"), Description: "Big Store", Category: "Food", SubCategory: "Groceries", Amount: USD(1000)},
		{Date: day("2024-01-04"), Description: "Tiny Shop", Category: "Food", SubCategory: "Groceries", Amount: USD(1)},
	}
	root := BuildHierarchy(nil, timeline, HierarchyOptions{Window: january})
	groceries := root.Child("Food").Child("Groceries")
	if groceries.Child(OtherNodesName) != nil || groceries.Child("Tiny Shop") == nil {
		t.Errorf("Food/Groceries children = %+v, want Tiny Shop kept", groceries.Children)
	}
}

func TestBuildHierarchy_Variance(t *testing.T) {
	var timeline []Transaction
	for m := range 12 {
		timeline = append(timeline, Transaction{
			Date: day("2023-01-15").AddMonths(m), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(100),
		})
	}
	timeline = append(timeline,
		Transaction{Date: day("2024-01-15"), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(200)},
		Transaction{Date: day("2024-01-16"), Description: "Gift", Category: "Gifts", SubCategory: "Birthday", Amount: USD(50)},
	)

	root := BuildHierarchy(nil, timeline, HierarchyOptions{Window: january})
	food := root.Child("Food")
	if food.Variance == nil || !food.Variance.Equal(100) || !food.IsShock {
		t.Errorf("Food variance = %v, shock = %v, want 100%%, true", food.Variance, food.IsShock)
	}
	if sub := food.Child("Groceries"); sub.Variance == nil || !sub.Variance.Equal(100) {
		t.Errorf("Food/Groceries variance = %v, want 100%%", sub.Variance)
	}
	if gifts := root.Child("Gifts"); gifts.Variance != nil || gifts.IsShock {
		t.Errorf("Gifts variance = %v, want undefined without history", gifts.Variance)
	}

	calm := BuildHierarchy(nil, timeline, HierarchyOptions{Window: january, ShockThreshold: 150})
	if calm.Child("Food").IsShock {
		t.Errorf("Food is a shock with a 150%% threshold")
	}
}

func TestBuildHierarchy_VarianceUsesLedgerHistory(t *testing.T) {
	var timeline []Transaction
	for m := range 12 {
		// 150 in the ledger, only 50 itemized.
		timeline = append(timeline,
			Transaction{Date: day("2023-01-01").AddMonths(m), Description: "Food", Category: "Food", Amount: USD(150)},
			Transaction{Date: day("2023-01-10").AddMonths(m), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(50)},
		)
	}
	timeline = append(timeline, Transaction{Date: day("2024-01-15"), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(300)})

	root := BuildHierarchy(nil, timeline, HierarchyOptions{Window: january})
	if v := root.Child("Food").Variance; v == nil || !v.Equal(100) {
		t.Errorf("Food variance = %v, want 100%% against 150 a month", v)
	}
}

func TestBuildHierarchy_AvgMonthly(t *testing.T) {
	q1 := Range{From: day("2024-01-01"), To: day("2024-03-31")}
	timeline := []Transaction{
		{Date: day("2024-01-03"), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(100)},
		{Date: day("2024-03-03"), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(200)},
		{Date: day("2024-04-03"), Description: "Market", Category: "Food", SubCategory: "Groceries", Amount: USD(900)},
		{Date: day("2024-02-03"), Description: "Refund", Category: "Food", SubCategory: "Groceries", Amount: USD(-50)},
		{Date: day("2024-02-03"), Description: "Salary", Category: "Work", Amount: USD(3000), Flow: Income},
	}
	root := BuildHierarchy(nil, timeline, HierarchyOptions{Window: q1, Leaves: LeafMonth})
	if want := USD(100); !root.AvgMonthly.Equal(want) {
		t.Errorf("root.AvgMonthly = %v, want %v", root.AvgMonthly, want)
	}
	if root.Child("Work") != nil {
		t.Errorf("income rows are part of the spending tree")
	}
	months := root.Child("Food").Child("Groceries")
	if len(months.Children) != 2 || months.Child("2024-03") == nil || months.Child("2024-01") == nil {
		t.Errorf("Food/Groceries leaves = %+v, want 2024-03 and 2024-01", months.Children)
	}
}

func TestBuildHierarchy_Pulse(t *testing.T) {
	journal, timeline := food()
	for i := range 12 {
		timeline = append(timeline, Transaction{
			Date:        day("2024-01-10"),
			Description: fmt.Sprintf("SHOP %c", 'A'+i),
			Category:    "Misc",
			SubCategory: "Shops",
			Amount:      USD(float64(10 + i)),
		})
	}
	merchants := MerchantResolver{Overrides: map[string]string{"Cafe Co": "Coffee"}}
	root := BuildHierarchy(journal, timeline, HierarchyOptions{Window: january, Pulse: true, Merchants: merchants})

	if len(root.Children) != 10 {
		t.Fatalf("pulse has %d merchants, want 10", len(root.Children))
	}
	if root.Children[0].Name != "Groceries Inc" || root.Children[1].Name != "Coffee" {
		t.Errorf("pulse starts with %q, %q, want Groceries Inc, Coffee", root.Children[0].Name, root.Children[1].Name)
	}
	if root.Child("Food") != nil {
		t.Errorf("pulse contains the Food summary row")
	}
	if !root.Unallocated.IsZero() {
		t.Errorf("pulse root.Unallocated = %v, want 0", root.Unallocated)
	}
	for _, c := range root.Children {
		if len(c.Children) != 0 {
			t.Errorf("pulse merchant %q has children", c.Name)
		}
	}
	checkSums(t, root)
}

func TestBuildHierarchy_Empty(t *testing.T) {
	root := BuildHierarchy(nil, nil, HierarchyOptions{Window: january})
	if root == nil || len(root.Children) != 0 || !root.Value.IsZero() || root.Count != 0 {
		t.Errorf("BuildHierarchy(nil) = %+v, want an empty root", root)
	}
}

func TestParseMetricAndLeafMode(t *testing.T) {
	if m, err := ParseMetric("Count"); err != nil || m != ByCount {
		t.Errorf("ParseMetric(Count) = %v, %v, want count", m, err)
	}
	if m, err := ParseMetric(""); err != nil || m != ByValue {
		t.Errorf("ParseMetric('') = %v, %v, want value", m, err)
	}
	if _, err := ParseMetric("weight"); err == nil {
		t.Errorf("ParseMetric(weight) expected an error")
	}
	if l, err := ParseLeafMode("month"); err != nil || l != LeafMonth {
		t.Errorf("ParseLeafMode(month) = %v, %v, want month", l, err)
	}
	if _, err := ParseLeafMode("week"); err == nil {
		t.Errorf("ParseLeafMode(week) expected an error")
	}
}
