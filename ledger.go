package wealth

import (
	"errors"
	"fmt"
)

// LedgerData is the monthly summary sheet of a year of income or expenses.
//
// Each subcategory holds one value per month, aligned with Months, and the
// annual total of these values.
type LedgerData struct {
	Flow       Flow
	Months     []Date // first day of each month, in order
	Categories []Category
}

// Category is a ledger category and its subcategories.
type Category struct {
	Name          string
	SubCategories []SubCategory
}

// SubCategory is a ledger line.
type SubCategory struct {
	Name    string
	Monthly []Money
	Total   Money
}

// Validate checks that every subcategory has one value per month and that
// its total is the sum of its monthly values.
func (l LedgerData) Validate() error {
	var errs []error
	for _, c := range l.Categories {
		for _, s := range c.SubCategories {
			if len(s.Monthly) != len(l.Months) {
				errs = append(errs, fmt.Errorf("%s/%s: %d monthly values for %d months", c.Name, s.Name, len(s.Monthly), len(l.Months)))
				continue
			}
			var sum Money
			for _, v := range s.Monthly {
				sum = sum.Add(v)
			}
			if !sum.value.Equal(s.Total.value) {
				errs = append(errs, fmt.Errorf("%s/%s: total %v is not the sum of monthly values %v", c.Name, s.Name, s.Total, sum))
			}
		}
	}
	return errors.Join(errs...)
}

// Transactions returns the summary rows of the ledger: one row per non zero
// monthly value, dated on the first day of the month, described with the
// subcategory name.
func (l LedgerData) Transactions() []Transaction {
	var rows []Transaction
	for _, c := range l.Categories {
		for _, s := range c.SubCategories {
			for i, v := range s.Monthly {
				if i >= len(l.Months) || v.IsZero() {
					continue
				}
				rows = append(rows, Transaction{
					Date:        l.Months[i],
					Description: s.Name,
					Category:    c.Name,
					SubCategory: s.Name,
					Amount:      v,
					Flow:        l.Flow,
					Source:      "ledger",
				})
			}
		}
	}
	return rows
}

// monthlyTotals returns, for each month, the total of all subcategories and
// its breakdown by category.
func (l LedgerData) monthlyTotals() (totals []Money, breakdowns []map[string]Money) {
	totals = make([]Money, len(l.Months))
	breakdowns = make([]map[string]Money, len(l.Months))
	for i := range l.Months {
		breakdowns[i] = make(map[string]Money)
		for _, c := range l.Categories {
			for _, s := range c.SubCategories {
				if i < len(s.Monthly) {
					totals[i] = totals[i].Add(s.Monthly[i])
					breakdowns[i][c.Name] = breakdowns[i][c.Name].Add(s.Monthly[i])
				}
			}
		}
	}
	return totals, breakdowns
}

// IncomeEntries returns one entry per month with the monthly total.
func (l LedgerData) IncomeEntries() []IncomeEntry {
	totals, breakdowns := l.monthlyTotals()
	entries := make([]IncomeEntry, 0, len(totals))
	for i, total := range totals {
		entries = append(entries, IncomeEntry{Date: l.Months[i], Amount: total, Categories: breakdowns[i]})
	}
	return entries
}

// ExpenseEntries returns one entry per month with the monthly total.
func (l LedgerData) ExpenseEntries() []ExpenseEntry {
	totals, breakdowns := l.monthlyTotals()
	entries := make([]ExpenseEntry, 0, len(totals))
	for i, total := range totals {
		entries = append(entries, ExpenseEntry{Date: l.Months[i], Total: total, Categories: breakdowns[i]})
	}
	return entries
}
