package wealth

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxReturn is the largest return, in absolute value, that is considered a
// valid valuation.
const MaxReturn Percent = 1_000_000

// ErrValuationOverflow is matched by errors reporting a return that cannot
// be displayed: non finite or beyond MaxReturn.
var ErrValuationOverflow = errors.New("valuation overflow")

// ValuationOverflowError reports an unusable return.
type ValuationOverflowError struct {
	Return Percent
}

func (e *ValuationOverflowError) Error() string {
	return fmt.Sprintf("valuation overflow: return %v is beyond %v", float64(e.Return), float64(MaxReturn))
}

func (e *ValuationOverflowError) Is(target error) bool { return target == ErrValuationOverflow }

// checkReturn returns a *ValuationOverflowError if p is not displayable.
func checkReturn(p Percent) error {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > float64(MaxReturn) {
		return &ValuationOverflowError{Return: p}
	}
	return nil
}

// Rates is an exchange rate table: the value of one unit of each currency,
// expressed in the primary currency.
type Rates map[string]decimal.Decimal

// Convert expresses m in the primary currency. Currencies missing from the
// table are assumed to already be in the primary currency.
func (r Rates) Convert(m Money, primary string) Money {
	if m.cur == primary || m.cur == "" {
		return m.In(primary)
	}
	rate, ok := r[m.cur]
	if !ok {
		return m.In(primary)
	}
	return m.Scale(rate, primary)
}

// Validate checks that the asset value is not negative and that its currency is known.
func (a Asset) Validate() error {
	if a.Value.IsNegative() {
		return fmt.Errorf("asset %q: negative value %v", a.Name, a.Value)
	}
	if c := a.Value.Currency(); c != "" {
		if err := ValidateCurrency(c); err != nil {
			return fmt.Errorf("asset %q: %w", a.Name, err)
		}
	}
	return nil
}

// NetWorth returns the total value of assets in the primary currency.
func NetWorth(assets []Asset, rates Rates, primary string) Money {
	total := M(0, primary)
	for _, a := range assets {
		total = total.Add(rates.Convert(a.Value, primary))
	}
	return total
}

// Anchor is the net worth a window starts from.
type Anchor struct {
	Date      Date
	Value     Money
	Synthetic bool // true if no recorded point existed and the value was derived from flows
}

// ResolveAnchor returns the latest point of history (chronologically sorted)
// on or before the start of window.
//
// Without such a point the anchor is synthesized at the window start as the
// current net worth minus the net contributions since then: the market part
// of the change is then zero by construction.
func ResolveAnchor(history []NetWorthPoint, window Range, current Money, income []IncomeEntry, expense []ExpenseEntry) Anchor {
	var anchor Anchor
	found := false
	for _, p := range history {
		if p.Date.After(window.From) {
			break
		}
		anchor, found = Anchor{Date: p.Date, Value: p.Value}, true
	}
	if found {
		return anchor
	}
	return Anchor{
		Date:      window.From,
		Value:     current.Sub(netContributions(income, expense, window.From)),
		Synthetic: true,
	}
}

// netContributions returns the total income minus the total expense, since a date.
func netContributions(income []IncomeEntry, expense []ExpenseEntry, since Date) Money {
	var net Money
	for _, e := range income {
		if !e.Date.Before(since) {
			net = net.Add(e.Amount)
		}
	}
	for _, e := range expense {
		if !e.Date.Before(since) {
			net = net.Sub(e.Total)
		}
	}
	return net
}

// NetWorthAttribution splits the change of net worth over a window.
type NetWorthAttribution struct {
	StartValue       Money
	EndValue         Money
	NetContributions Money   // income minus expense
	MarketGain       Money   // change not explained by contributions
	Return           Percent // Dietz money-weighted return
}

// AttributeNetWorth attributes the change from anchor to current into net
// contributions and market gain. Only entries dated on or after the anchor
// date are taken into account.
//
// The attribution is always returned. If the return overflows, it is set to
// zero and a *ValuationOverflowError is returned too.
func AttributeNetWorth(current Money, anchor Anchor, income []IncomeEntry, expense []ExpenseEntry) (NetWorthAttribution, error) {
	net := netContributions(income, expense, anchor.Date)
	d := Dietz(anchor.Value, current, net)

	attr := NetWorthAttribution{
		StartValue:       anchor.Value,
		EndValue:         current,
		NetContributions: net,
		MarketGain:       d.Gain,
		Return:           d.Return,
	}

	// a near zero base makes any return meaningless.
	cent := decimal.NewFromFloat(0.01)
	if averageCapital(anchor.Value, net).Abs().LessThan(cent) && anchor.Value.value.Abs().LessThan(cent) {
		attr.Return = 0
	}

	if err := checkReturn(attr.Return); err != nil {
		attr.Return = 0
		return attr, err
	}
	return attr, nil
}
