package wealth

// UnallocatedName describes the rows of spending known from the ledger but
// not itemized yet.
const UnallocatedName = "Unallocated"

type reconcileKey struct {
	flow        Flow
	category    string // normalized
	subCategory string // normalized, empty for a category total
	month       Date
}

// Reconcile returns the effective rows of a timeline mixing itemized rows
// and ledger summary rows.
//
// Itemized rows are kept as is. Summary rows are dropped, and for each
// subcategory and month where the ledger total is larger than the itemized
// total, a synthetic row described as UnallocatedName carries the
// difference, dated on the first day of the month. A category total row
// adds a category level synthetic row only for what remains once the
// itemized rows and the subcategory rows are counted. Summing the result
// never counts the same spending twice.
func Reconcile(rows []Transaction) []Transaction {
	summary := make(map[reconcileKey]Money)
	itemized := make(map[reconcileKey]Money)
	names := make(map[reconcileKey][2]string)
	var order []reconcileKey

	out := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		month := r.Date.StartOf(Monthly)
		cat := normalizeName(r.Category)
		if r.IsSummary() {
			k := reconcileKey{flow: r.Flow, category: cat, month: month}
			if r.summarizesSubCategory() {
				k.subCategory = normalizeName(r.SubCategory)
			}
			if _, ok := summary[k]; !ok {
				order = append(order, k)
				sub := ""
				if k.subCategory != "" {
					sub = r.SubCategory
				}
				names[k] = [2]string{r.Category, sub}
			}
			summary[k] = summary[k].Add(r.Amount)
			continue
		}
		out = append(out, r)
		catKey := reconcileKey{flow: r.Flow, category: cat, month: month}
		itemized[catKey] = itemized[catKey].Add(r.Amount)
		if r.SubCategory != "" {
			subKey := catKey
			subKey.subCategory = normalizeName(r.SubCategory)
			itemized[subKey] = itemized[subKey].Add(r.Amount)
		}
	}

	synthetic := func(k reconcileKey, amount Money) Transaction {
		return Transaction{
			Date:        k.month,
			Description: UnallocatedName,
			Category:    names[k][0],
			SubCategory: names[k][1],
			Amount:      amount,
			Flow:        k.flow,
			Source:      "ledger",
		}
	}

	// subcategory gaps first, they count against the category total
	subGaps := make(map[reconcileKey]Money)
	for _, k := range order {
		if k.subCategory == "" {
			continue
		}
		diff := summary[k].Sub(itemized[k])
		if !diff.IsPositive() {
			continue
		}
		out = append(out, synthetic(k, diff))
		catKey := k
		catKey.subCategory = ""
		subGaps[catKey] = subGaps[catKey].Add(diff)
	}
	for _, k := range order {
		if k.subCategory != "" {
			continue
		}
		diff := summary[k].Sub(itemized[k]).Sub(subGaps[k])
		if !diff.IsPositive() {
			continue
		}
		out = append(out, synthetic(k, diff))
	}
	return out
}
