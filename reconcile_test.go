package wealth

import "testing"

func TestReconcile(t *testing.T) {
	rows := []Transaction{
		// ledger says 500 of Food in January, 350 are itemized.
		{Date: day("2024-01-01"), Description: "Food", Category: "Food", Amount: EUR(500)},
		{Date: day("2024-01-05"), Description: "Groceries Inc", Category: "Food", SubCategory: "Groceries", Amount: EUR(200), Journal: true},
		{Date: day("2024-01-07"), Description: "Cafe Co", Category: "Food", SubCategory: "Cafe", Amount: EUR(150), Journal: true},
		// ledger says 100 of Transport/Fuel in January, nothing itemized.
		{Date: day("2024-01-01"), Description: "fuel", Category: "Transport", SubCategory: "Fuel", Amount: EUR(100)},
		// ledger says 50 of Fun in February, 80 are itemized.
		{Date: day("2024-02-01"), Description: "Fun", Category: "Fun", Amount: EUR(50)},
		{Date: day("2024-02-03"), Description: "Cinema", Category: "Fun", Amount: EUR(80)},
	}

	got := Reconcile(rows)

	var total Money
	unallocated := map[string]Money{}
	for _, r := range got {
		if r.IsSummary() {
			t.Errorf("Reconcile() kept summary row %+v", r)
		}
		total = total.Add(r.Amount)
		if r.Description == UnallocatedName {
			unallocated[r.Category] = unallocated[r.Category].Add(r.Amount)
		}
	}
	// max(500, 350) + max(100, 0) + max(50, 80)
	if want := EUR(680); !total.Equal(want) {
		t.Errorf("Reconcile() total = %v, want %v", total, want)
	}
	if want := EUR(150); !unallocated["Food"].Equal(want) {
		t.Errorf("Food unallocated = %v, want %v", unallocated["Food"], want)
	}
	if want := EUR(100); !unallocated["Transport"].Equal(want) {
		t.Errorf("Transport unallocated = %v, want %v", unallocated["Transport"], want)
	}
	if !unallocated["Fun"].IsZero() {
		t.Errorf("Fun unallocated = %v, want 0", unallocated["Fun"])
	}
}

func TestReconcile_CategoryAndSubCategoryRows(t *testing.T) {
	rows := []Transaction{
		// the Food total is 3000, of which the ledger details 2000 of Groceries.
		{Date: day("2024-01-01"), Description: "Food", Category: "Food", Amount: EUR(3000)},
		{Date: day("2024-01-01"), Description: "Groceries", Category: "Food", SubCategory: "Groceries", Amount: EUR(2000)},
		{Date: day("2024-01-03"), Description: "Big Store", Category: "Food", SubCategory: "Groceries", Amount: EUR(1000), Journal: true},
	}

	var total Money
	unallocated := map[string]Money{}
	for _, r := range Reconcile(rows) {
		total = total.Add(r.Amount)
		if r.Description == UnallocatedName {
			unallocated[r.SubCategory] = unallocated[r.SubCategory].Add(r.Amount)
		}
	}
	if want := EUR(3000); !total.Equal(want) {
		t.Errorf("Reconcile() total = %v, want %v", total, want)
	}
	if want := EUR(1000); !unallocated["Groceries"].Equal(want) {
		t.Errorf("Food/Groceries unallocated = %v, want %v", unallocated["Groceries"], want)
	}
	if want := EUR(1000); !unallocated[""].Equal(want) {
		t.Errorf("Food unallocated = %v, want %v", unallocated[""], want)
	}

	// the hierarchy counts the same unallocated amount.
	root := BuildHierarchy(nil, rows, HierarchyOptions{Window: january})
	if food := root.Child("Food"); food == nil || !food.Unallocated.Equal(EUR(2000)) {
		t.Errorf("BuildHierarchy() Food = %+v, want 2000 unallocated", food)
	}
}
