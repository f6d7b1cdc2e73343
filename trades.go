package wealth

import (
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// exitedTolerance is the net quantity under which a position is closed.
const exitedTolerance = 1e-6

// Trade is a buy or a sell of a security.
//
// Quantity and Total are signed: positive for a Buy, negative for a Sell.
// Total is the settlement amount: the cost plus fee of a Buy, or the
// proceeds net of fee of a Sell.
type Trade struct {
	ID       string
	Date     Date
	Ticker   string // normalized, see NormalizeTicker
	Type     TradeType
	Quantity Quantity
	Price    Money
	Total    Money
	Account  string
	Fee      Money
}

// NewTrade creates a trade, computing its signed quantity and total.
// The sign of quantity, price and fee is ignored, only their magnitude counts.
func NewTrade(id string, on Date, ticker string, t TradeType, quantity Quantity, price, fee Money, account string) Trade {
	qty := quantity.Abs()
	gross := price.Abs().Mul(qty)
	fee = fee.Abs()

	sign := decimal.NewFromInt(t.sign())
	var total Money
	if t == Buy {
		total = gross.Add(fee)
	} else {
		total = gross.Sub(fee).Neg()
	}

	return Trade{
		ID:       id,
		Date:     on,
		Ticker:   NormalizeTicker(ticker),
		Type:     t,
		Quantity: Quantity{value: qty.value.Mul(sign)},
		Price:    price.Abs(),
		Total:    total,
		Account:  account,
		Fee:      fee,
	}
}

var exchangeSuffixRE = regexp.MustCompile(`[.:][A-Z0-9]{1,4}$`)

// NormalizeTicker returns the matching form of a ticker symbol: upper case,
// without spaces nor exchange suffix ("vwrl.l" becomes "VWRL").
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.Join(strings.Fields(t), "")
	if loc := exchangeSuffixRE.FindStringIndex(t); loc != nil && loc[0] > 0 {
		t = t[:loc[0]]
	}
	return t
}

// Position is the aggregation of all trades of a ticker.
type Position struct {
	Ticker      string
	NetQuantity Quantity
	AverageCost Money // average cost of a bought share, fees included
	Invested    Money // total of buys
	Proceeds    Money // total of sells, positive
	Trades      []Trade
	Exited      bool // the net quantity is zero
}

// NewPositions groups trades by normalized ticker.
//
// Positions are sorted with open positions first, then exited ones, each
// group in alphabetical order of ticker.
func NewPositions(trades []Trade) []Position {
	index := make(map[string]int)
	var positions []Position
	var bought []Quantity

	for _, t := range trades {
		ticker := NormalizeTicker(t.Ticker)
		i, ok := index[ticker]
		if !ok {
			i = len(positions)
			index[ticker] = i
			positions = append(positions, Position{Ticker: ticker})
			bought = append(bought, Quantity{})
		}
		p := &positions[i]
		p.Trades = append(p.Trades, t)
		switch t.Type {
		case Buy:
			p.NetQuantity = p.NetQuantity.Add(t.Quantity.Abs())
			p.Invested = p.Invested.Add(t.Total.Abs())
			bought[i] = bought[i].Add(t.Quantity.Abs())
		case Sell:
			p.NetQuantity = p.NetQuantity.Sub(t.Quantity.Abs())
			p.Proceeds = p.Proceeds.Add(t.Total.Abs())
		}
	}

	for i := range positions {
		p := &positions[i]
		if !bought[i].IsZero() {
			p.AverageCost = p.Invested.Div(bought[i])
		}
		p.Exited = p.NetQuantity.IsNegligible(exitedTolerance)
	}

	slices.SortStableFunc(positions, func(a, b Position) int {
		if a.Exited != b.Exited {
			if a.Exited {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Ticker, b.Ticker)
	})
	return positions
}

// OpenPositions returns the positions that are not exited.
func OpenPositions(positions []Position) []Position {
	var open []Position
	for _, p := range positions {
		if !p.Exited {
			open = append(open, p)
		}
	}
	return open
}
