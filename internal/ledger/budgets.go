package ledger

import (
	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

type budgetCell struct {
	name  core.CategoryName
	value decimal.Decimal
}

// BudgetTable owns the per-month, per-category spending limits. Budgets
// live independently of entries: a budget may exist with no matching
// entries and vice versa.
type BudgetTable struct {
	months map[string]map[string]budgetCell // month key -> category key
}

func NewBudgetTable() *BudgetTable {
	return &BudgetTable{months: make(map[string]map[string]budgetCell)}
}

// Set stores the budget for (month, category). The raw value is
// normalized, never rejected: unparseable or negative input becomes 0.
// The stored normalized value is returned.
func (t *BudgetTable) Set(month core.Month, name core.CategoryName, raw string) decimal.Decimal {
	value := core.NormalizeBudget(raw)
	mk := month.String()
	cells, ok := t.months[mk]
	if !ok {
		cells = make(map[string]budgetCell)
		t.months[mk] = cells
	}
	cells[name.Key()] = budgetCell{name: name, value: value}
	return value
}

// Get returns the budget for (month, category), defaulting to 0.
func (t *BudgetTable) Get(month core.Month, name core.CategoryName) decimal.Decimal {
	if cell, ok := t.months[month.String()][name.Key()]; ok {
		return cell.value
	}
	return decimal.Zero
}

// ForMonth returns the category -> budget mapping for a month.
func (t *BudgetTable) ForMonth(month core.Month) map[core.CategoryName]decimal.Decimal {
	out := make(map[core.CategoryName]decimal.Decimal)
	for _, cell := range t.months[month.String()] {
		out[cell.name] = cell.value
	}
	return out
}

// Replace swaps in a whole month's budgets, used when loading persisted
// state.
func (t *BudgetTable) Replace(month core.Month, budgets map[core.CategoryName]decimal.Decimal) {
	cells := make(map[string]budgetCell, len(budgets))
	for name, value := range budgets {
		if value.IsNegative() {
			value = decimal.Zero
		}
		cells[name.Key()] = budgetCell{name: name, value: value}
	}
	t.months[month.String()] = cells
}

// RemoveCategory deletes every budget keyed to the category, across all
// months, and returns the months that were touched.
func (t *BudgetTable) RemoveCategory(name core.CategoryName) []core.Month {
	var touched []core.Month
	for mk, cells := range t.months {
		if _, ok := cells[name.Key()]; !ok {
			continue
		}
		delete(cells, name.Key())
		if m, err := core.ParseMonth(mk); err == nil {
			touched = append(touched, m)
		}
	}
	return touched
}

// ClearMonth removes every budget for the month.
func (t *BudgetTable) ClearMonth(month core.Month) {
	delete(t.months, month.String())
}

// Clear removes all budgets.
func (t *BudgetTable) Clear() {
	t.months = make(map[string]map[string]budgetCell)
}
