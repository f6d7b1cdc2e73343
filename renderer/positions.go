package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/wealth"
	md "github.com/nao1215/markdown"
)

// PositionsMarkdown renders trade lots grouped by ticker, open positions first.
func PositionsMarkdown(positions []wealth.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")
	if len(positions) == 0 {
		doc.PlainText("No trades.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Ticker", "Quantity", "Avg. Cost", "Invested", "Proceeds", "Trades", "Status"},
		Rows:   [][]string{},
	}
	for _, p := range positions {
		status := "open"
		if p.Exited {
			status = "exited"
		}
		table.Rows = append(table.Rows, []string{
			p.Ticker,
			p.NetQuantity.String(),
			p.AverageCost.String(),
			p.Invested.String(),
			moneyOrDash(p.Proceeds),
			strconv.Itoa(len(p.Trades)),
			status,
		})
	}
	doc.Table(table)
	return doc.String()
}
