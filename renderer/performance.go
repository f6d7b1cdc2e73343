package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealth"
	md "github.com/nao1215/markdown"
)

// PerformanceMarkdown renders the attribution of a portfolio over the
// current window.
func PerformanceMarkdown(w wealth.Windows, a wealth.PortfolioAttribution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Performance %s", w.Current))
	doc.PlainText(md.Italic(asOf()))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Portfolio Value"),
			md.Bold(a.EndValue.String()),
		},
		Rows: [][]string{
			{"Start Value", a.StartValue.String()},
			{"Contributions", a.Contributions.SignedString()},
			{"Market Alpha", a.MarketAlpha.SignedString()},
			{"Alpha Return", a.AlphaReturn.SignedString()},
			{"Money-Weighted Return", a.Return.SignedString()},
			{"Max Drawdown", a.MaxDrawdown.SignedString()},
			{"Growth Velocity (per day)", a.Velocity.SignedString()},
		},
	})

	if len(a.Accounts) > 0 {
		doc.H2("Accounts")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Account", "Start", "End", "Change"},
			Rows:   [][]string{},
		}
		for _, acc := range a.Accounts {
			table.Rows = append(table.Rows, []string{
				acc.Account,
				acc.StartValue.String(),
				acc.EndValue.String(),
				acc.EndValue.Sub(acc.StartValue).SignedString(),
			})
		}
		doc.Table(table)
	}
	return doc.String()
}
