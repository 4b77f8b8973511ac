package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestRecomputeItemCosts(t *testing.T) {
	item := &BudgetItem{Quantity: 3, EstimatedUnitCost: 50}
	RecomputeItemCosts(item)

	assert.Equal(t, 150.0, item.EstimatedCost)
	assert.Nil(t, item.ActualCost, "actual cost stays unset until a unit cost is recorded")
}

func TestRecomputeItemCostsWithActual(t *testing.T) {
	item := &BudgetItem{Quantity: 4, EstimatedUnitCost: 25, ActualUnitCost: floatPtr(30)}
	RecomputeItemCosts(item)

	assert.Equal(t, 100.0, item.EstimatedCost)
	assert.NotNil(t, item.ActualCost)
	assert.Equal(t, 120.0, *item.ActualCost)
}

func TestRecomputeItemCostsMissingOperandYieldsZero(t *testing.T) {
	item := &BudgetItem{Quantity: 0, EstimatedUnitCost: 50}
	RecomputeItemCosts(item)
	assert.Equal(t, 0.0, item.EstimatedCost)

	item = &BudgetItem{Quantity: 5, EstimatedUnitCost: 0}
	RecomputeItemCosts(item)
	assert.Equal(t, 0.0, item.EstimatedCost)
}

func TestRecomputeItemCostsIsIdempotent(t *testing.T) {
	item := &BudgetItem{Quantity: 3, EstimatedUnitCost: 50, ActualUnitCost: floatPtr(45)}

	RecomputeItemCosts(item)
	first := *item
	RecomputeItemCosts(item)

	assert.Equal(t, first.EstimatedCost, item.EstimatedCost)
	assert.Equal(t, *first.ActualCost, *item.ActualCost)
}

func TestRecomputeItemCostsClearsStaleActual(t *testing.T) {
	stale := 99.0
	item := &BudgetItem{Quantity: 2, EstimatedUnitCost: 10, ActualCost: &stale}
	RecomputeItemCosts(item)

	assert.Nil(t, item.ActualCost)
}

func TestRecomputeItemCostsZeroQuantityZeroesActual(t *testing.T) {
	item := &BudgetItem{Quantity: 2, EstimatedUnitCost: 10, ActualUnitCost: floatPtr(10)}
	RecomputeItemCosts(item)
	assert.Equal(t, 20.0, *item.ActualCost)

	item.Quantity = 0
	RecomputeItemCosts(item)

	if assert.NotNil(t, item.ActualCost, "actual stays recorded while a unit cost exists") {
		assert.Equal(t, 0.0, *item.ActualCost)
	}
	assert.Equal(t, 0.0, item.EstimatedCost)
}
