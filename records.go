package wealth

import (
	"time"
)

// Asset is a holding valued in its native currency.
type Asset struct {
	ID      string
	Name    string
	Class   string // free form classification: Cash, RealEstate, Investment, ...
	Value   Money
	Updated time.Time
}

// IncomeEntry is an income of a given date, with an optional breakdown by category.
type IncomeEntry struct {
	Date       Date
	Amount     Money
	Categories map[string]Money
}

// ExpenseEntry is an expense of a given date, with an optional breakdown by category.
type ExpenseEntry struct {
	Date       Date
	Total      Money
	Categories map[string]Money
}

// JournalEntry is a single itemized transaction, ingested from a statement
// or entered manually. It is never a summary row.
type JournalEntry struct {
	Date          Date
	Description   string // raw description, as found in the statement
	CanonicalName string // optional merchant identity, overrides any other resolution
	Category      string
	SubCategory   string
	Amount        Money
	Source        string // statement or account label
}

// PortfolioLogEntry is the valuation of each account at a given date.
type PortfolioLogEntry struct {
	Date     Date
	Accounts map[string]Money
}

// Total returns the sum of all accounts.
func (e PortfolioLogEntry) Total() Money {
	var total Money
	for _, v := range e.Accounts {
		total = total.Add(v)
	}
	return total
}

// NetWorthPoint is a recorded net worth at a given date.
type NetWorthPoint struct {
	Date  Date
	Value Money
}

// Flow is the direction of a timeline row.
type Flow int

const (
	Expense Flow = iota
	Income
)

func (f Flow) String() string {
	switch f {
	case Expense:
		return "expense"
	case Income:
		return "income"
	default:
		return "unknown"
	}
}

// Transaction is a row of the general timeline. It is either an itemized
// transaction (Journal is true when it comes from the journal) or a ledger
// summary row carrying the total of a category or subcategory.
type Transaction struct {
	Date          Date
	Description   string
	CanonicalName string
	Category      string
	SubCategory   string
	Amount        Money
	Flow          Flow
	Source        string
	Journal       bool
}

// Transaction converts a journal entry into a timeline row.
func (e JournalEntry) Transaction() Transaction {
	return Transaction{
		Date:          e.Date,
		Description:   e.Description,
		CanonicalName: e.CanonicalName,
		Category:      e.Category,
		SubCategory:   e.SubCategory,
		Amount:        e.Amount,
		Flow:          Expense,
		Source:        e.Source,
		Journal:       true,
	}
}

// IsSummary reports whether the row is a ledger summary row: a non journal
// row whose description repeats its category or subcategory name.
func (t Transaction) IsSummary() bool {
	if t.Journal {
		return false
	}
	desc := normalizeName(t.Description)
	return desc != "" && (desc == normalizeName(t.Category) || desc == normalizeName(t.SubCategory))
}

// summarizesSubCategory reports whether a summary row carries a subcategory total (as
// opposed to a category total).
func (t Transaction) summarizesSubCategory() bool {
	return t.SubCategory != "" && normalizeName(t.Description) == normalizeName(t.SubCategory)
}
