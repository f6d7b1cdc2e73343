package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/wealth"
	md "github.com/nao1215/markdown"
)

// FlowMarkdown renders a flow chart drilled down along path.
func FlowMarkdown(chart wealth.FlowChart, path []string, w wealth.Windows) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Spending Flow"
	if len(path) > 0 {
		title += ": " + strings.Join(path[:chart.Depth], " / ")
	}
	doc.H1(title)
	doc.PlainText(md.Italic(asOf()))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Window", "Range", "Total"},
		Rows: [][]string{
			{md.Bold("Current"), w.Current.String(), md.Bold(chart.Current.String())},
			{"Shadow", w.Shadow.String(), chart.Shadow.String()},
			{"Change", "", chart.Current.Sub(chart.Shadow).SignedString()},
		},
	})

	label := [...]string{"Category", "Subcategory", "Month"}[chart.Depth]
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{label, "Current", "Shadow", "Change", "Share"},
		Rows:   [][]string{},
	}
	for _, g := range chart.Groups {
		table.Rows = append(table.Rows, []string{
			g.Name,
			g.Current.String(),
			g.Shadow.String(),
			g.Delta.SignedString(),
			g.Share.String(),
		})
	}
	doc.Table(table)

	if len(chart.Trend) > 0 {
		doc.H2("Trend")
		trend := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Month", "Current", "Shadow", "Rolling Avg."},
			Rows:   [][]string{},
		}
		for _, p := range chart.Trend {
			trend.Rows = append(trend.Rows, []string{
				p.Month.MonthLabel(),
				p.Current.String(),
				p.Shadow.String(),
				p.RollingAverage.String(),
			})
		}
		doc.Table(trend)
	}
	return doc.String()
}
