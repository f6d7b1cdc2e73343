package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/wealth"
	md "github.com/nao1215/markdown"
)

// HierarchyMarkdown renders a spending hierarchy: a summary of the
// categories, then one section per category with its subcategories and
// their leaves.
func HierarchyMarkdown(root *wealth.HierarchyNode, w wealth.Windows) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s", root.Name, w.Current))
	doc.PlainText(md.Italic(asOf()))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total"),
			md.Bold(root.Value.String()),
		},
		Rows: [][]string{
			{"Transactions", strconv.Itoa(root.Count)},
			{"Monthly Average", root.AvgMonthly.String()},
			{"Unallocated", moneyOrDash(root.Unallocated)},
		},
	})

	if len(root.Children) == 0 {
		doc.PlainText("No spending in this window.")
		return doc.String()
	}

	doc.Table(nodesTable(root.Children, "Category"))

	for _, cat := range root.Children {
		if len(cat.Children) == 0 {
			continue
		}
		doc.H2(cat.Name)
		var rows []*wealth.HierarchyNode
		for _, sub := range cat.Children {
			rows = append(rows, sub)
			for _, leaf := range sub.Children {
				rows = append(rows, &wealth.HierarchyNode{
					Name:            sub.Name + " / " + leaf.Name,
					Value:           leaf.Value,
					Count:           leaf.Count,
					AvgMonthly:      leaf.AvgMonthly,
					MaxHit:          leaf.MaxHit,
					IsJournalBacked: leaf.IsJournalBacked,
				})
			}
		}
		doc.Table(nodesTable(rows, "Subcategory"))
	}
	return doc.String()
}

func nodesTable(nodes []*wealth.HierarchyNode, label string) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{label, "Value", "Count", "Avg./Month", "Max Hit", "Variance", "Unallocated"},
		Rows:   [][]string{},
	}
	for _, n := range nodes {
		name := n.Name
		switch {
		case n.IsSummaryNode:
			name += " (ledger)"
		case n.IsJournalBacked:
			name = md.Bold(name)
		}
		table.Rows = append(table.Rows, []string{
			name,
			n.Value.String(),
			strconv.Itoa(n.Count),
			n.AvgMonthly.String(),
			moneyOrDash(n.MaxHit),
			variance(n.Variance, n.IsShock),
			moneyOrDash(n.Unallocated),
		})
	}
	return table
}
