package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealth"
	md "github.com/nao1215/markdown"
)

// NetWorthMarkdown renders the attribution of the net worth change over
// the current window, and the assets it is made of.
func NetWorthMarkdown(w wealth.Windows, anchor wealth.Anchor, a wealth.NetWorthAttribution, assets []wealth.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net Worth on %s", w.Current.To))
	doc.PlainText(md.Italic(asOf()))

	startLabel := fmt.Sprintf("Value on %s", anchor.Date)
	if anchor.Synthetic {
		startLabel += " (derived from flows)"
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Net Worth"),
			md.Bold(a.EndValue.String()),
		},
		Rows: [][]string{
			{startLabel, a.StartValue.String()},
			{"Net Contributions", a.NetContributions.SignedString()},
			{"Market Gain", a.MarketGain.SignedString()},
			{"Return", a.Return.SignedString()},
		},
	})

	if len(assets) > 0 {
		doc.H2("Assets")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Asset", "Class", "Value"},
			Rows:   [][]string{},
		}
		for _, asset := range assets {
			table.Rows = append(table.Rows, []string{asset.Name, asset.Class, asset.Value.String()})
		}
		doc.Table(table)
	}
	return doc.String()
}
