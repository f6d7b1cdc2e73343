package sheet

import (
	"strings"
	"testing"

	"github.com/etnz/wealth"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

const workbook = `{
  "assets": [
    {"id": "cash", "name": "Checking", "class": "Cash", "value": "1,250.50"},
    {"name": "Flat", "class": "RealEstate", "value": 200000, "currency": "usd"}
  ],
  "trades": [
    {"date": "2024-01-10", "ticker": "acme.pa", "type": "buy", "quantity": 10, "price": 100, "fee": 1, "account": "PEA"}
  ],
  "journal": [
    {"date": "2024-03-02", "description": "CB CARREFOUR 1234", "category": "Food", "subCategory": "Groceries", "amount": 42.1}
  ],
  "timeline": [
    {"date": "2024-03-05", "description": "Salary", "category": "Salary", "amount": 3000, "flow": "income"}
  ],
  "portfolioLog": [
    {"date": "2024-01-01", "accounts": {"PEA": 1000, "CTO": 500}}
  ],
  "netWorth": [
    {"date": "2024-01-01", "value": 10000}
  ],
  "ledgers": [
    {
      "flow": "expense",
      "months": ["2024-01", "2024-02"],
      "categories": [
        {"name": "Food", "subCategories": [{"name": "Groceries", "monthly": [300, 200]}]}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	w, err := Decode(strings.NewReader(workbook), DefaultTables(), "EUR")
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	if len(w.Assets) != 2 {
		t.Fatalf("len(Assets) = %d, want 2", len(w.Assets))
	}
	if got, want := w.Assets[0].Value, wealth.M(1250.5, "EUR"); !got.Equal(want) {
		t.Errorf("Assets[0].Value = %v, want %v", got, want)
	}
	if got := w.Assets[1].Value.Currency(); got != "USD" {
		t.Errorf("Assets[1] currency = %q, want USD", got)
	}
	if w.Assets[1].ID == "" {
		t.Errorf("Assets[1].ID is empty, want a generated id")
	}

	if len(w.Trades) != 1 {
		t.Fatalf("len(Trades) = %d, want 1", len(w.Trades))
	}
	tr := w.Trades[0]
	if tr.Ticker != "ACME" || tr.Type != wealth.Buy {
		t.Errorf("trade = %s %v, want ACME Buy", tr.Ticker, tr.Type)
	}
	if got, want := tr.Total, wealth.M(1001, "EUR"); !got.Equal(want) {
		t.Errorf("trade total = %v, want %v", got, want)
	}

	if len(w.Journal) != 1 || w.Journal[0].SubCategory != "Groceries" {
		t.Errorf("Journal = %+v, want one Groceries entry", w.Journal)
	}
	if len(w.Timeline) != 1 || w.Timeline[0].Flow != wealth.Income {
		t.Errorf("Timeline = %+v, want one income row", w.Timeline)
	}
	if got, want := w.PortfolioLog[0].Total(), wealth.M(1500, "EUR"); !got.Equal(want) {
		t.Errorf("PortfolioLog total = %v, want %v", got, want)
	}
	if len(w.NetWorth) != 1 {
		t.Errorf("len(NetWorth) = %d, want 1", len(w.NetWorth))
	}

	if len(w.Ledgers) != 1 {
		t.Fatalf("len(Ledgers) = %d, want 1", len(w.Ledgers))
	}
	sub := w.Ledgers[0].Categories[0].SubCategories[0]
	if got, want := sub.Total, wealth.M(500, "EUR"); !got.Equal(want) {
		t.Errorf("ledger total = %v, want %v", got, want)
	}
	if got, want := w.Ledgers[0].Months[1], wealth.NewDate(2024, 2, 1); got != want {
		t.Errorf("ledger month = %v, want %v", got, want)
	}
}

func TestDecode_MissingTables(t *testing.T) {
	w, err := Decode(strings.NewReader(`{"assets": []}`), DefaultTables(), "EUR")
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(w.Trades) != 0 || len(w.Ledgers) != 0 {
		t.Errorf("Decode() = %+v, want an empty workbook", w)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"json", `{`, "decode workbook"},
		{"date", `{"journal": [{"date": "someday", "amount": 1}]}`, "journal row 0"},
		{"trade type", `{"trades": [{"date": "2024-01-01", "type": "hold"}]}`, "trades row 0"},
		{"number", `{"netWorth": [{"date": "2024-01-01", "value": "ten"}]}`, "net_worth row 0"},
		{"ledger total", `{"ledgers": [{"months": ["2024-01"], "categories": [{"name": "Food", "subCategories": [{"name": "Eat", "monthly": [10], "total": 12}]}]}]}`, "ledgers row 0"},
		{"flow", `{"timeline": [{"date": "2024-01-01", "flow": "sideways"}]}`, "timeline row 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc), DefaultTables(), "EUR")
			if err == nil {
				t.Fatalf("Decode() expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestTables_With(t *testing.T) {
	doc := `{"data": {"spend": [{"date": "2024-01-01", "description": "Bakery", "amount": 3}]}}`
	tables := DefaultTables().With(map[string]string{Journal: "$.data.spend", Assets: ""})
	if tables[Assets] != "$.assets" {
		t.Errorf("empty override replaced the default selector: %q", tables[Assets])
	}
	w, err := Decode(strings.NewReader(doc), tables, "EUR")
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(w.Journal) != 1 || w.Journal[0].Description != "Bakery" {
		t.Errorf("Journal = %+v, want the Bakery entry", w.Journal)
	}
}

func TestWorkbook_GeneralTimeline(t *testing.T) {
	w, err := Decode(strings.NewReader(workbook), DefaultTables(), "EUR")
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	var descriptions []string
	for _, r := range w.GeneralTimeline() {
		descriptions = append(descriptions, r.Description)
	}
	want := []string{"Salary", "Groceries", "Groceries"}
	if diff := cmp.Diff(want, descriptions); diff != "" {
		t.Errorf("GeneralTimeline() mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkbook_Flows(t *testing.T) {
	w, err := Decode(strings.NewReader(workbook), DefaultTables(), "EUR")
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	income, expenses := w.Flows()
	if len(income) != 0 {
		t.Errorf("len(income) = %d, want 0", len(income))
	}
	if len(expenses) != 2 {
		t.Fatalf("len(expenses) = %d, want 2", len(expenses))
	}
	if got, want := expenses[0].Total, wealth.M(300, "EUR"); !got.Equal(want) {
		t.Errorf("expenses[0].Total = %v, want %v", got, want)
	}
}

func TestWorkbook_Convert(t *testing.T) {
	doc := `{
  "assets": [{"name": "Flat", "value": 100, "currency": "USD"}],
  "journal": [
    {"date": "2024-03-02", "description": "Shop", "category": "Food", "amount": 20},
    {"date": "2024-03-03", "description": "Shop", "category": "Food", "amount": 30, "currency": "USD"},
    {"date": "2024-03-04", "description": "Shop", "category": "Food", "amount": 10, "currency": "GBP"}
  ],
  "portfolioLog": [{"date": "2024-01-01", "accounts": {"IB": 500}, "currency": "USD"}]
}`
	w, err := Decode(strings.NewReader(doc), DefaultTables(), "EUR")
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	rates := wealth.Rates{"USD": decimal.NewFromFloat(0.9)}
	got := w.Convert(rates, "EUR")

	var amounts []string
	for _, e := range got.Journal {
		amounts = append(amounts, e.Amount.Currency()+" "+e.Amount.String())
	}
	// GBP has no rate, its amount is taken as is
	want := []string{"EUR " + wealth.M(20, "EUR").String(), "EUR " + wealth.M(27, "EUR").String(), "EUR " + wealth.M(10, "EUR").String()}
	if diff := cmp.Diff(want, amounts); diff != "" {
		t.Errorf("Convert() journal mismatch (-want +got):\n%s", diff)
	}
	if total := got.PortfolioLog[0].Total(); !total.Equal(wealth.M(450, "EUR")) {
		t.Errorf("Convert() portfolio total = %v, want 450 EUR", total)
	}
	if c := got.Assets[0].Value.Currency(); c != "USD" {
		t.Errorf("Convert() asset currency = %q, want USD", c)
	}
	if c := w.Journal[1].Amount.Currency(); c != "USD" {
		t.Errorf("Convert() modified its receiver: currency = %q", c)
	}
	if (*Workbook)(nil).Convert(rates, "EUR") != nil {
		t.Errorf("Convert() of a nil workbook is not nil")
	}
}
