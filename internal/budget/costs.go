package budget

// RecomputeItemCosts refreshes the derived cost fields from quantity and unit
// costs. It is idempotent and must run before every persistence of an item
// whose quantity or unit costs changed.
//
// actual_cost stays nil while actual_unit_cost is unset: "not yet incurred"
// is distinct from a recorded zero cost.
func RecomputeItemCosts(item *BudgetItem) {
	if item.EstimatedUnitCost != 0 && item.Quantity != 0 {
		item.EstimatedCost = item.EstimatedUnitCost * float64(item.Quantity)
	} else {
		item.EstimatedCost = 0
	}

	if item.ActualUnitCost != nil {
		actual := *item.ActualUnitCost * float64(item.Quantity)
		item.ActualCost = &actual
	} else {
		item.ActualCost = nil
	}
}
