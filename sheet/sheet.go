// Package sheet decodes a wealth workbook: the JSON export of the
// spreadsheet tables holding assets, trades, flows, journal, portfolio log
// and ledgers.
//
// Each table is located in the document by a jsonpath selector, so that
// exports of different layouts can be read without conversion.
package sheet

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/wealth"
	"github.com/google/uuid"
)

// Table names.
const (
	Assets       = "assets"
	Trades       = "trades"
	Income       = "income"
	Expenses     = "expenses"
	Journal      = "journal"
	Timeline     = "timeline"
	PortfolioLog = "portfolio_log"
	NetWorth     = "net_worth"
	Ledgers      = "ledgers"
)

// Tables maps table names to their jsonpath selector.
type Tables map[string]string

// DefaultTables returns the selectors of a workbook with one top level key
// per table.
func DefaultTables() Tables {
	return Tables{
		Assets:       "$.assets",
		Trades:       "$.trades",
		Income:       "$.income",
		Expenses:     "$.expenses",
		Journal:      "$.journal",
		Timeline:     "$.timeline",
		PortfolioLog: "$.portfolioLog",
		NetWorth:     "$.netWorth",
		Ledgers:      "$.ledgers",
	}
}

// With returns a copy of t where overrides replace the default selectors.
func (t Tables) With(overrides map[string]string) Tables {
	out := maps.Clone(t)
	for name, sel := range overrides {
		if sel != "" {
			out[name] = sel
		}
	}
	return out
}

// Workbook is the decoded content of all tables.
type Workbook struct {
	Assets       []wealth.Asset
	Trades       []wealth.Trade
	Income       []wealth.IncomeEntry
	Expenses     []wealth.ExpenseEntry
	Journal      []wealth.JournalEntry
	Timeline     []wealth.Transaction // itemized rows of the general timeline
	PortfolioLog []wealth.PortfolioLogEntry
	NetWorth     []wealth.NetWorthPoint
	Ledgers      []wealth.LedgerData
}

// Decode reads a workbook. Amounts without an explicit currency are in
// currency. Missing tables are empty.
func Decode(r io.Reader, tables Tables, currency string) (*Workbook, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}

	d := decoder{doc: doc, tables: tables, currency: currency}
	w := new(Workbook)
	steps := []struct {
		table  string
		decode func(int, row) error
	}{
		{Assets, func(_ int, r row) error { return d.asset(w, r) }},
		{Trades, func(_ int, r row) error { return d.trade(w, r) }},
		{Income, func(_ int, r row) error { return d.income(w, r) }},
		{Expenses, func(_ int, r row) error { return d.expense(w, r) }},
		{Journal, func(_ int, r row) error { return d.journal(w, r) }},
		{Timeline, func(_ int, r row) error { return d.transaction(w, r) }},
		{PortfolioLog, func(_ int, r row) error { return d.portfolioLog(w, r) }},
		{NetWorth, func(_ int, r row) error { return d.netWorth(w, r) }},
		{Ledgers, func(_ int, r row) error { return d.ledger(w, r) }},
	}
	for _, s := range steps {
		for i, r := range d.table(s.table) {
			if err := s.decode(i, r); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", s.table, i, err)
			}
		}
	}
	slog.Debug("workbook decoded",
		"assets", len(w.Assets), "trades", len(w.Trades), "journal", len(w.Journal),
		"timeline", len(w.Timeline), "ledgers", len(w.Ledgers))
	return w, nil
}

type decoder struct {
	doc      any
	tables   Tables
	currency string
}

// table returns the rows selected for name.
func (d decoder) table(name string) []row {
	sel, ok := d.tables[name]
	if !ok || sel == "" {
		return nil
	}
	v, err := jsonpath.Get(sel, d.doc)
	if err != nil {
		slog.Debug("table not found", "table", name, "selector", sel, "error", err)
		return nil
	}
	return rows(v)
}

func (d decoder) asset(w *Workbook, r row) error {
	value, err := r.money("value", r.currency(d.currency))
	if err != nil {
		return err
	}
	a := wealth.Asset{
		ID:    r.str("id"),
		Name:  r.str("name"),
		Class: r.str("class", "type"),
		Value: value,
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if s := r.str("updated"); s != "" {
		if a.Updated, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("updated: %w", err)
		}
	}
	if err := a.Validate(); err != nil {
		return err
	}
	w.Assets = append(w.Assets, a)
	return nil
}

func (d decoder) trade(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	typ, err := wealth.ParseTradeType(r.str("type", "side"))
	if err != nil {
		return err
	}
	qty, err := r.number("quantity")
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	cur := r.currency(d.currency)
	price, err := r.money("price", cur)
	if err != nil {
		return err
	}
	fee, err := r.money("fee", cur)
	if err != nil {
		return err
	}
	id := r.str("id")
	if id == "" {
		id = uuid.NewString()
	}
	w.Trades = append(w.Trades, wealth.NewTrade(id, on, r.str("ticker", "symbol"), typ, wealth.Q(qty), price, fee, r.str("account")))
	return nil
}

func (d decoder) income(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	cur := r.currency(d.currency)
	amount, err := r.money("amount", cur)
	if err != nil {
		return err
	}
	cats, err := r.moneyMap("categories", cur)
	if err != nil {
		return err
	}
	w.Income = append(w.Income, wealth.IncomeEntry{Date: on, Amount: amount, Categories: cats})
	return nil
}

func (d decoder) expense(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	cur := r.currency(d.currency)
	total, err := r.money("total", cur)
	if err != nil {
		return err
	}
	cats, err := r.moneyMap("categories", cur)
	if err != nil {
		return err
	}
	w.Expenses = append(w.Expenses, wealth.ExpenseEntry{Date: on, Total: total, Categories: cats})
	return nil
}

func (d decoder) journal(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	amount, err := r.money("amount", r.currency(d.currency))
	if err != nil {
		return err
	}
	w.Journal = append(w.Journal, wealth.JournalEntry{
		Date:          on,
		Description:   r.str("description"),
		CanonicalName: r.str("canonicalName", "canonical_name"),
		Category:      r.str("category"),
		SubCategory:   r.str("subCategory", "sub_category"),
		Amount:        amount,
		Source:        r.str("source"),
	})
	return nil
}

func parseFlow(s string) (wealth.Flow, error) {
	switch s {
	case "", "expense", "EXPENSE":
		return wealth.Expense, nil
	case "income", "INCOME":
		return wealth.Income, nil
	default:
		return 0, fmt.Errorf("unknown flow %q", s)
	}
}

func (d decoder) transaction(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	amount, err := r.money("amount", r.currency(d.currency))
	if err != nil {
		return err
	}
	flow, err := parseFlow(r.str("flow", "type"))
	if err != nil {
		return err
	}
	w.Timeline = append(w.Timeline, wealth.Transaction{
		Date:          on,
		Description:   r.str("description"),
		CanonicalName: r.str("canonicalName", "canonical_name"),
		Category:      r.str("category"),
		SubCategory:   r.str("subCategory", "sub_category"),
		Amount:        amount,
		Flow:          flow,
		Source:        r.str("source"),
	})
	return nil
}

func (d decoder) portfolioLog(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	accounts, err := r.moneyMap("accounts", r.currency(d.currency))
	if err != nil {
		return err
	}
	w.PortfolioLog = append(w.PortfolioLog, wealth.PortfolioLogEntry{Date: on, Accounts: accounts})
	return nil
}

func (d decoder) netWorth(w *Workbook, r row) error {
	on, err := r.date("date")
	if err != nil {
		return err
	}
	value, err := r.money("value", r.currency(d.currency))
	if err != nil {
		return err
	}
	w.NetWorth = append(w.NetWorth, wealth.NetWorthPoint{Date: on, Value: value})
	return nil
}

func (d decoder) ledger(w *Workbook, r row) error {
	flow, err := parseFlow(r.str("flow", "type"))
	if err != nil {
		return err
	}
	cur := r.currency(d.currency)
	l := wealth.LedgerData{Flow: flow}

	months, _ := r["months"].([]any)
	for i, m := range months {
		s, _ := m.(string)
		on, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("months[%d]: %w", i, err)
		}
		l.Months = append(l.Months, on)
	}

	for _, c := range rows(r["categories"]) {
		cat := wealth.Category{Name: c.str("name")}
		for _, s := range rows(c["subCategories"]) {
			sub := wealth.SubCategory{Name: s.str("name"), Total: wealth.M(0, cur)}
			values, _ := s["monthly"].([]any)
			for i, v := range values {
				amount, err := toDecimal(v)
				if err != nil {
					return fmt.Errorf("%s/%s monthly[%d]: %w", cat.Name, sub.Name, i, err)
				}
				sub.Monthly = append(sub.Monthly, wealth.M(amount, cur))
			}
			if _, ok := s["total"]; ok {
				if sub.Total, err = s.money("total", cur); err != nil {
					return err
				}
			} else {
				for _, v := range sub.Monthly {
					sub.Total = sub.Total.Add(v)
				}
			}
			cat.SubCategories = append(cat.SubCategories, sub)
		}
		l.Categories = append(l.Categories, cat)
	}
	if err := l.Validate(); err != nil {
		return err
	}
	w.Ledgers = append(w.Ledgers, l)
	return nil
}

// GeneralTimeline returns the itemized timeline and the summary rows of all
// ledgers.
func (w *Workbook) GeneralTimeline() []wealth.Transaction {
	out := append([]wealth.Transaction(nil), w.Timeline...)
	for _, l := range w.Ledgers {
		out = append(out, l.Transactions()...)
	}
	return out
}

// Flows returns the income and expense entries. Without explicit entries,
// they are derived from the ledgers.
func (w *Workbook) Flows() ([]wealth.IncomeEntry, []wealth.ExpenseEntry) {
	income, expenses := w.Income, w.Expenses
	for _, l := range w.Ledgers {
		switch {
		case l.Flow == wealth.Income && len(w.Income) == 0:
			income = append(income, l.IncomeEntries()...)
		case l.Flow == wealth.Expense && len(w.Expenses) == 0:
			expenses = append(expenses, l.ExpenseEntries()...)
		}
	}
	return income, expenses
}
