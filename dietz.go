package wealth

import "github.com/shopspring/decimal"

// DietzResult is the money-weighted return of a period.
type DietzResult struct {
	Gain   Money   // growth not explained by the net flow, rounded to 2 decimals
	Return Percent // gain relative to the average capital, rounded to 4 decimals
}

// Dietz computes the simple Dietz return of a period that started at start,
// ended at end, and received netFlow of external capital.
//
// The flow is assumed to happen in the middle of the period, so the average
// capital is start + netFlow/2. When that capital is too small to be
// meaningful (at most 1 unit), the return falls back to gain/start, or 0
// without a positive start.
func Dietz(start, end, netFlow Money) DietzResult {
	gain := end.Sub(start).Sub(netFlow)
	capital := averageCapital(start, netFlow)

	var ret decimal.Decimal
	switch {
	case capital.Abs().GreaterThan(decimal.NewFromInt(1)):
		ret = gain.value.Div(capital.Abs()).Mul(decimal.NewFromInt(100))
	case start.IsPositive():
		ret = gain.value.Div(start.value).Mul(decimal.NewFromInt(100))
	}

	return DietzResult{
		Gain:   gain.Round(2),
		Return: Percent(ret.Round(4).InexactFloat64()),
	}
}

// averageCapital returns the Dietz average capital of a period.
func averageCapital(start, netFlow Money) decimal.Decimal {
	return start.value.Add(netFlow.value.Div(decimal.NewFromInt(2)))
}
