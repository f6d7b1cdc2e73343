package sheet

import (
	"log/slog"

	"github.com/etnz/wealth"
)

// converter expresses amounts in the primary currency.
type converter struct {
	rates   wealth.Rates
	primary string
	missing map[string]bool // currencies without a rate, already reported
}

func (c *converter) money(m wealth.Money) wealth.Money {
	if cur := m.Currency(); cur != "" && cur != c.primary {
		if _, ok := c.rates[cur]; !ok && !c.missing[cur] {
			c.missing[cur] = true
			slog.Warn("no exchange rate, amounts are taken as is", "currency", cur, "primary", c.primary)
		}
	}
	return c.rates.Convert(m, c.primary)
}

func (c *converter) moneyMap(in map[string]wealth.Money) map[string]wealth.Money {
	if in == nil {
		return nil
	}
	out := make(map[string]wealth.Money, len(in))
	for k, v := range in {
		out[k] = c.money(v)
	}
	return out
}

// Convert returns a copy of the workbook where every amount, except the
// asset values, is expressed in the primary currency. Assets keep their
// native currency: wealth.NetWorth converts them.
func (wb *Workbook) Convert(rates wealth.Rates, primary string) *Workbook {
	if wb == nil {
		return nil
	}
	c := &converter{rates: rates, primary: primary, missing: make(map[string]bool)}
	out := &Workbook{Assets: wb.Assets}

	for _, t := range wb.Trades {
		t.Price, t.Fee, t.Total = c.money(t.Price), c.money(t.Fee), c.money(t.Total)
		out.Trades = append(out.Trades, t)
	}
	for _, e := range wb.Income {
		e.Amount, e.Categories = c.money(e.Amount), c.moneyMap(e.Categories)
		out.Income = append(out.Income, e)
	}
	for _, e := range wb.Expenses {
		e.Total, e.Categories = c.money(e.Total), c.moneyMap(e.Categories)
		out.Expenses = append(out.Expenses, e)
	}
	for _, e := range wb.Journal {
		e.Amount = c.money(e.Amount)
		out.Journal = append(out.Journal, e)
	}
	for _, t := range wb.Timeline {
		t.Amount = c.money(t.Amount)
		out.Timeline = append(out.Timeline, t)
	}
	for _, e := range wb.PortfolioLog {
		e.Accounts = c.moneyMap(e.Accounts)
		out.PortfolioLog = append(out.PortfolioLog, e)
	}
	for _, p := range wb.NetWorth {
		p.Value = c.money(p.Value)
		out.NetWorth = append(out.NetWorth, p)
	}
	for _, l := range wb.Ledgers {
		cats := make([]wealth.Category, 0, len(l.Categories))
		for _, cat := range l.Categories {
			subs := make([]wealth.SubCategory, 0, len(cat.SubCategories))
			for _, s := range cat.SubCategories {
				monthly := make([]wealth.Money, len(s.Monthly))
				for i, v := range s.Monthly {
					monthly[i] = c.money(v)
				}
				s.Monthly, s.Total = monthly, c.money(s.Total)
				subs = append(subs, s)
			}
			cat.SubCategories = subs
			cats = append(cats, cat)
		}
		l.Categories = cats
		out.Ledgers = append(out.Ledgers, l)
	}
	return out
}
