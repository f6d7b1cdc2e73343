package wealth

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountPerformance is the change of a single account over the series.
type AccountPerformance struct {
	Account    string
	StartValue Money
	EndValue   Money
}

// PortfolioAttribution separates the growth of a portfolio into what the
// investor added by trading and what the market did.
type PortfolioAttribution struct {
	StartValue    Money
	EndValue      Money
	Contributions Money   // buys minus sells
	MarketAlpha   Money   // growth not explained by contributions
	AlphaReturn   Percent // MarketAlpha relative to StartValue
	Return        Percent // Dietz money-weighted return
	MaxDrawdown   Percent
	Velocity      Money // average growth per day
	Accounts      []AccountPerformance
}

// AttributePortfolio computes the attribution of a chronologically sorted
// snapshot series, with the trades of the same window.
//
// If live is not nil, it replaces the value of the last snapshot, to reflect
// price movements that were not snapshotted yet.
func AttributePortfolio(series []PortfolioLogEntry, trades []Trade, live *Money) PortfolioAttribution {
	var a PortfolioAttribution
	if len(series) == 0 && live == nil {
		return a
	}

	values := make([]Money, 0, len(series)+1)
	for _, e := range series {
		values = append(values, e.Total())
	}
	if len(series) > 0 {
		a.StartValue = values[0]
		a.EndValue = values[len(values)-1]
	}
	if live != nil {
		a.EndValue = *live
		if len(values) > 0 {
			values[len(values)-1] = *live
		} else {
			values = append(values, *live)
			a.StartValue = *live
		}
	}

	for _, t := range trades {
		switch t.Type {
		case Buy:
			a.Contributions = a.Contributions.Add(t.Total.Abs())
		case Sell:
			a.Contributions = a.Contributions.Sub(t.Total.Abs())
		}
	}

	a.MarketAlpha = a.EndValue.Sub(a.StartValue).Sub(a.Contributions)
	if !a.StartValue.IsZero() {
		alpha := a.MarketAlpha.value.Div(a.StartValue.value).Mul(decimal.NewFromInt(100))
		a.AlphaReturn = Percent(alpha.Round(2).InexactFloat64())
	}
	a.Return = Dietz(a.StartValue, a.EndValue, a.Contributions).Return
	a.MaxDrawdown = MaxDrawdown(values)
	a.Velocity = growthVelocity(series, a.StartValue, a.EndValue)
	a.Accounts = accountPerformances(series)
	return a
}

// MaxDrawdown returns the worst decline from a running peak, as a negative
// percentage rounded to 2 decimals. It is 0 for a non decreasing series.
func MaxDrawdown(values []Money) Percent {
	var peak, worst decimal.Decimal
	hundred := decimal.NewFromInt(100)
	for i, v := range values {
		if i == 0 || v.value.GreaterThan(peak) {
			peak = v.value
		}
		if !peak.IsPositive() {
			continue
		}
		dd := v.value.Sub(peak).Div(peak).Mul(hundred)
		if dd.LessThan(worst) {
			worst = dd
		}
	}
	return Percent(worst.Round(2).InexactFloat64())
}

// GrowthVelocity returns the average change of value per day between the
// first and the last snapshot. It is zero with fewer than 2 snapshots or no
// elapsed day.
func GrowthVelocity(series []PortfolioLogEntry) Money {
	if len(series) < 2 {
		return Money{}
	}
	return growthVelocity(series, series[0].Total(), series[len(series)-1].Total())
}

func growthVelocity(series []PortfolioLogEntry, start, end Money) Money {
	if len(series) < 2 {
		return Money{}
	}
	days := series[0].Date.DaysUntil(series[len(series)-1].Date)
	if days <= 0 {
		return Money{}
	}
	return end.Sub(start).DivInt(days)
}

// accountPerformances returns the first and last known value of each account.
func accountPerformances(series []PortfolioLogEntry) []AccountPerformance {
	index := make(map[string]int)
	var perfs []AccountPerformance
	for _, e := range series {
		for name, v := range e.Accounts {
			i, ok := index[name]
			if !ok {
				i = len(perfs)
				index[name] = i
				perfs = append(perfs, AccountPerformance{Account: name, StartValue: v})
			}
			perfs[i].EndValue = v
		}
	}
	slices.SortFunc(perfs, func(a, b AccountPerformance) int { return strings.Compare(a.Account, b.Account) })
	return perfs
}
