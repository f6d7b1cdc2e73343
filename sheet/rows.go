package sheet

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/wealth"
	"github.com/shopspring/decimal"
)

// row is a decoded JSON object of a table.
type row map[string]any

// str returns the first non empty string value of keys.
func (r row) str(keys ...string) string {
	for _, k := range keys {
		switch v := r[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// date returns the date value of key. Month labels ("2024-03") are the
// first day of the month.
func (r row) date(key string) (wealth.Date, error) {
	s := r.str(key)
	if s == "" {
		return wealth.Date{}, fmt.Errorf("missing %q", key)
	}
	return parseDate(s)
}

func parseDate(s string) (wealth.Date, error) {
	if on, err := time.Parse(wealth.MonthFormat, s); err == nil {
		return wealth.NewDate(on.Year(), on.Month(), 1), nil
	}
	return wealth.ParseDate(s)
}

// number returns the numeric value of key, 0 when missing.
func (r row) number(key string) (decimal.Decimal, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return decimal.Zero, nil
	}
	return toDecimal(v)
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		// spreadsheets export formatted numbers: "1,234.50", "1 234.50"
		s := strings.NewReplacer(",", "", " ", "", " ", "").Replace(strings.TrimSpace(v))
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid number %q", v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("invalid number %v (%T)", v, v)
	}
}

// money returns the amount of key in currency.
func (r row) money(key, currency string) (wealth.Money, error) {
	d, err := r.number(key)
	if err != nil {
		return wealth.Money{}, fmt.Errorf("%s: %w", key, err)
	}
	return wealth.M(d, currency), nil
}

// moneyMap returns the object of key as amounts in currency.
func (r row) moneyMap(key, currency string) (map[string]wealth.Money, error) {
	raw, ok := r[key].(map[string]any)
	if !ok {
		return nil, nil
	}
	m := make(map[string]wealth.Money, len(raw))
	for name, v := range raw {
		d, err := toDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", key, name, err)
		}
		m[name] = wealth.M(d, currency)
	}
	return m, nil
}

// currency returns the currency of the row, or fallback.
func (r row) currency(fallback string) string {
	if c := r.str("currency"); c != "" {
		return strings.ToUpper(c)
	}
	return fallback
}

// rows returns the objects of a table, ignoring anything else.
func rows(v any) []row {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]row, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, row(m))
		}
	}
	return out
}
