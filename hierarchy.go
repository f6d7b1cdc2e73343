package wealth

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Metric selects the measure used to rank and collapse nodes.
type Metric int

const (
	// ByValue ranks nodes by spent amount.
	ByValue Metric = iota
	// ByCount ranks nodes by number of transactions.
	ByCount
)

func (m Metric) String() string {
	if m == ByCount {
		return "count"
	}
	return "value"
}

// LeafMode selects how the leaves of a subcategory are grouped.
type LeafMode int

const (
	// LeafMerchant groups leaves by merchant identity.
	LeafMerchant LeafMode = iota
	// LeafMonth groups leaves by calendar month.
	LeafMonth
)

func (l LeafMode) String() string {
	if l == LeafMonth {
		return "month"
	}
	return "merchant"
}

// ParseMetric parses "value" or "count".
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value":
		return ByValue, nil
	case "count":
		return ByCount, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", s)
	}
}

// ParseLeafMode parses "merchant" or "month".
func ParseLeafMode(s string) (LeafMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merchant":
		return LeafMerchant, nil
	case "month":
		return LeafMonth, nil
	default:
		return 0, fmt.Errorf("unknown leaf mode %q", s)
	}
}

const (
	// DefaultFloorShare is the share of its parent, in percent, under which a
	// node is folded into OtherNodesName.
	DefaultFloorShare = 1.5
	// DefaultShockThreshold is the variance above which a node is a shock.
	DefaultShockThreshold Percent = 50
	// OtherNodesName is the name of the node collecting the long tail.
	OtherNodesName = "Other Nodes"
	// pulseSize is the number of merchants kept in pulse mode.
	pulseSize = 10
	// baselineMonths is the number of months of the variance baseline.
	baselineMonths = 12
)

// HierarchyOptions configures BuildHierarchy.
type HierarchyOptions struct {
	Window    Range // the resolved current window
	Metric    Metric
	Leaves    LeafMode
	Pulse     bool // flat ranking of merchants instead of a category tree
	Merchants MerchantResolver

	FloorShare     float64 // in percent, DefaultFloorShare when 0
	ShockThreshold Percent // DefaultShockThreshold when 0
}

// HierarchyNode is a node of the spending hierarchy.
type HierarchyNode struct {
	ID    string
	Name  string
	Value Money
	Count int

	MaxHit          Money    // largest single transaction
	AvgMonthly      Money    // Value per month of the window
	Variance        *Percent // AvgMonthly compared to the median of the previous 12 months, nil if undefined
	IsShock         bool     // Variance is beyond the shock threshold
	IsJournalBacked bool     // at least one transaction comes from the journal
	IsSummaryNode   bool     // only known from ledger summary rows
	Unallocated     Money    // ledger spending not itemized yet

	Children []*HierarchyNode
}

// Child returns the direct child named name, or nil.
func (n *HierarchyNode) Child(name string) *HierarchyNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (n *HierarchyNode) add(t Transaction) {
	n.Value = n.Value.Add(t.Amount)
	n.Count++
	n.MaxHit = n.MaxHit.Max(t.Amount)
	n.IsJournalBacked = n.IsJournalBacked || t.Journal
}

// metric returns the measure of n.
func (n *HierarchyNode) metric(m Metric) decimal.Decimal {
	if m == ByCount {
		return decimal.NewFromInt(int64(n.Count))
	}
	return n.Value.value
}

// nodeIndex creates children on demand, matching names loosely.
type nodeIndex map[*HierarchyNode]map[string]*HierarchyNode

func (idx nodeIndex) child(parent *HierarchyNode, name string) *HierarchyNode {
	children, ok := idx[parent]
	if !ok {
		children = make(map[string]*HierarchyNode)
		idx[parent] = children
	}
	key := normalizeName(name)
	if c, ok := children[key]; ok {
		return c
	}
	c := &HierarchyNode{ID: parent.ID + "/" + name, Name: name}
	children[key] = c
	parent.Children = append(parent.Children, c)
	return c
}

// BuildHierarchy builds the spending tree of the window.
//
// journal entries are always itemized. timeline is the general timeline, it
// may contain ledger summary rows: they never become nodes of their own,
// their amount only feeds the Unallocated value of their category and
// subcategory. The ledger total of a category is its category rows when
// there are any, the sum of its subcategory rows otherwise. The full timeline (not only the window) is used to compute
// the variance baseline.
func BuildHierarchy(journal []JournalEntry, timeline []Transaction, opts HierarchyOptions) *HierarchyNode {
	if opts.FloorShare == 0 {
		opts.FloorShare = DefaultFloorShare
	}
	if opts.ShockThreshold == 0 {
		opts.ShockThreshold = DefaultShockThreshold
	}

	all := make([]Transaction, 0, len(journal)+len(timeline))
	for _, e := range journal {
		all = append(all, e.Transaction())
	}
	for _, t := range timeline {
		if t.Flow == Expense {
			all = append(all, t)
		}
	}

	var rows []Transaction
	for _, t := range all {
		if t.Amount.IsPositive() && opts.Window.Contains(t.Date) {
			rows = append(rows, t)
		}
	}

	months := max(opts.Window.Months(), 1)
	if opts.Pulse {
		root := buildPulse(rows, opts)
		setAverages(root, months)
		return root
	}
	root := buildTree(rows, opts)
	setAverages(root, months)
	applyVariance(root, Reconcile(all), opts)
	collapse(root, opts)
	return root
}

// buildPulse ranks merchants regardless of categories, keeping the top ones.
func buildPulse(rows []Transaction, opts HierarchyOptions) *HierarchyNode {
	root := &HierarchyNode{ID: "root", Name: "Pulse"}
	idx := make(nodeIndex)
	for _, t := range rows {
		if t.IsSummary() {
			continue
		}
		idx.child(root, opts.Merchants.Resolve(t)).add(t)
	}
	sortChildren(root, opts.Metric)
	if len(root.Children) > pulseSize {
		root.Children = root.Children[:pulseSize]
	}
	for _, c := range root.Children {
		root.Value = root.Value.Add(c.Value)
		root.Count += c.Count
		root.MaxHit = root.MaxHit.Max(c.MaxHit)
		root.IsJournalBacked = root.IsJournalBacked || c.IsJournalBacked
	}
	return root
}

// buildTree builds the category, subcategory, leaf tree.
func buildTree(rows []Transaction, opts HierarchyOptions) *HierarchyNode {
	root := &HierarchyNode{ID: "root", Name: "Spending"}
	idx := make(nodeIndex)
	ledger := make(map[*HierarchyNode]Money)
	hasCategoryRows := make(map[*HierarchyNode]bool)

	for _, t := range rows {
		cat := idx.child(root, nonEmpty(t.Category, "Uncategorized"))
		if t.IsSummary() {
			if t.summarizesSubCategory() {
				sub := idx.child(cat, t.SubCategory)
				ledger[sub] = ledger[sub].Add(t.Amount)
			} else {
				ledger[cat] = ledger[cat].Add(t.Amount)
				hasCategoryRows[cat] = true
			}
			continue
		}
		sub := idx.child(cat, nonEmpty(t.SubCategory, "General"))
		var leafName string
		if opts.Leaves == LeafMonth {
			leafName = t.Date.MonthLabel()
		} else {
			leafName = opts.Merchants.Resolve(t)
		}
		leaf := idx.child(sub, leafName)

		for _, n := range []*HierarchyNode{root, cat, sub, leaf} {
			n.add(t)
		}
	}

	// a category total row, when present, bounds the whole category;
	// otherwise the category is only known through its subcategory rows.
	for _, cat := range root.Children {
		var subs Money
		for _, sub := range cat.Children {
			sub.Unallocated = unallocated(ledger[sub], sub.Value)
			sub.IsSummaryNode = sub.Count == 0
			subs = subs.Add(sub.Unallocated)
			sortChildren(sub, opts.Metric)
		}
		cat.Unallocated = subs
		if hasCategoryRows[cat] {
			cat.Unallocated = subs.Max(unallocated(ledger[cat], cat.Value))
		}
		cat.IsSummaryNode = cat.Count == 0
		root.Unallocated = root.Unallocated.Add(cat.Unallocated)
		sortChildren(cat, opts.Metric)
	}
	sortChildren(root, opts.Metric)
	return root
}

// unallocated returns the part of the ledger total not backed by itemized rows.
func unallocated(ledger, itemized Money) Money {
	diff := ledger.Sub(itemized)
	if diff.IsPositive() {
		return diff
	}
	return M(0, diff.cur)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// sortChildren sorts by decreasing metric, then by name.
func sortChildren(n *HierarchyNode, m Metric) {
	slices.SortStableFunc(n.Children, func(a, b *HierarchyNode) int {
		if c := b.metric(m).Cmp(a.metric(m)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

func setAverages(n *HierarchyNode, months int) {
	n.AvgMonthly = n.Value.DivInt(months)
	for _, c := range n.Children {
		setAverages(c, months)
	}
}

// applyVariance compares each category and subcategory to the median of its
// monthly spending over the months preceding the window.
func applyVariance(root *HierarchyNode, effective []Transaction, opts HierarchyOptions) {
	type monthKey struct {
		name  string
		month Date
	}
	totals := make(map[monthKey]Money)
	for _, t := range effective {
		if t.Flow != Expense {
			continue
		}
		month := t.Date.StartOf(Monthly)
		cat := normalizeName(nonEmpty(t.Category, "Uncategorized"))
		sub := cat + "/" + normalizeName(nonEmpty(t.SubCategory, "General"))
		totals[monthKey{cat, month}] = totals[monthKey{cat, month}].Add(t.Amount)
		totals[monthKey{sub, month}] = totals[monthKey{sub, month}].Add(t.Amount)
	}

	first := opts.Window.From.StartOf(Monthly)
	baseline := func(name string) float64 {
		values := make([]float64, 0, baselineMonths)
		for i := 1; i <= baselineMonths; i++ {
			values = append(values, totals[monthKey{name, first.AddMonths(-i)}].AsFloat())
		}
		return Median(values)
	}

	setVariance := func(n *HierarchyNode, name string) {
		median := baseline(name)
		if median <= 0 {
			return
		}
		p, ok := PercentageChange(n.AvgMonthly.AsFloat(), median)
		if !ok {
			return
		}
		n.Variance = &p
		n.IsShock = p >= opts.ShockThreshold
	}

	for _, cat := range root.Children {
		catName := normalizeName(cat.Name)
		setVariance(cat, catName)
		for _, sub := range cat.Children {
			setVariance(sub, catName+"/"+normalizeName(sub.Name))
		}
	}
}

// collapse folds, at every level, the children below the floor share of
// their parent into a single OtherNodesName child, when there is more than
// one of them.
func collapse(n *HierarchyNode, opts HierarchyOptions) {
	for _, c := range n.Children {
		collapse(c, opts)
	}
	if len(n.Children) < 2 {
		return
	}

	floor := n.metric(opts.Metric).Mul(decimal.NewFromFloat(opts.FloorShare)).Div(decimal.NewFromInt(100))
	var major, minor []*HierarchyNode
	for _, c := range n.Children {
		if c.metric(opts.Metric).LessThan(floor) {
			minor = append(minor, c)
		} else {
			major = append(major, c)
		}
	}
	if len(minor) < 2 {
		return
	}

	other := &HierarchyNode{ID: n.ID + "/" + OtherNodesName, Name: OtherNodesName, Children: minor}
	for _, c := range minor {
		other.Value = other.Value.Add(c.Value)
		other.Count += c.Count
		other.MaxHit = other.MaxHit.Max(c.MaxHit)
		other.AvgMonthly = other.AvgMonthly.Add(c.AvgMonthly)
		other.Unallocated = other.Unallocated.Add(c.Unallocated)
		other.IsJournalBacked = other.IsJournalBacked || c.IsJournalBacked
	}
	n.Children = append(major, other)
}
