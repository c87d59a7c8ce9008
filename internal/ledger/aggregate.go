package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

// CategoryTotal is one row of a month's category breakdown. Orphan rows
// belong to names no longer present in the registry; they keep
// accumulating and must stay representable.
type CategoryTotal struct {
	Name   core.CategoryName
	Total  decimal.Decimal
	Orphan bool
}

// BudgetProgress reports how a month's spending in one category tracks
// its budget. Percent is meaningful only when HasBudget is true.
type BudgetProgress struct {
	Category  core.CategoryName
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	HasBudget bool
	Over      bool
	Percent   decimal.Decimal
}

// MonthSummary is the aggregation snapshot for a month. Biggest is empty
// when every total is zero; it is never a category with zero spending.
type MonthSummary struct {
	Month      core.Month
	Total      decimal.Decimal
	Categories []CategoryTotal
	Biggest    core.CategoryName
	Budgets    []BudgetProgress
}

var percentCap = decimal.NewFromInt(999)

// Summarize computes a month's totals, category breakdown, winner and
// budget progress. It is pure: inputs are read, never mutated.
func Summarize(month core.Month, entries []core.Entry, known []core.CategoryName, budgets map[core.CategoryName]decimal.Decimal) MonthSummary {
	type row struct {
		name   core.CategoryName
		total  decimal.Decimal
		orphan bool
	}

	rows := make(map[string]*row)
	add := func(name core.CategoryName, orphan bool) *row {
		if r, ok := rows[name.Key()]; ok {
			return r
		}
		r := &row{name: name, total: decimal.Zero, orphan: orphan}
		rows[name.Key()] = r
		return r
	}

	// Every registered category reports a total, even at zero spend.
	for _, name := range known {
		add(name, false)
	}
	for name := range budgets {
		add(name, rows[name.Key()] == nil)
	}

	total := decimal.Zero
	for _, e := range entries {
		name := core.CategoryName(strings.TrimSpace(string(e.Category)))
		r, ok := rows[name.Key()]
		if !ok {
			r = add(name, true)
		}
		r.total = r.total.Add(e.Amount)
		total = total.Add(e.Amount)
	}

	ordered := make([]*row, 0, len(rows))
	for _, r := range rows {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].name < ordered[j].name })

	summary := MonthSummary{
		Month:      month,
		Total:      total,
		Categories: make([]CategoryTotal, 0, len(ordered)),
		Budgets:    make([]BudgetProgress, 0, len(ordered)),
	}

	best := decimal.Zero
	for _, r := range ordered {
		summary.Categories = append(summary.Categories, CategoryTotal{
			Name:   r.name,
			Total:  r.total,
			Orphan: r.orphan,
		})
		// Strict greater-than keeps the first name in lexicographic order
		// on ties, and leaves no winner when everything is zero.
		if r.total.GreaterThan(best) {
			best = r.total
			summary.Biggest = r.name
		}

		budget := decimal.Zero
		if b, ok := budgets[r.name]; ok {
			budget = b
		} else {
			for name, b := range budgets {
				if name.Key() == r.name.Key() {
					budget = b
					break
				}
			}
		}
		summary.Budgets = append(summary.Budgets, progress(r.name, budget, r.total))
	}

	return summary
}

func progress(name core.CategoryName, budget, spent decimal.Decimal) BudgetProgress {
	p := BudgetProgress{
		Category:  name,
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Sub(spent),
	}
	if !budget.IsPositive() {
		return p
	}
	p.HasBudget = true
	p.Over = p.Remaining.IsNegative()
	percent := spent.Div(budget).Mul(decimal.NewFromInt(100))
	switch {
	case percent.IsNegative():
		percent = decimal.Zero
	case percent.GreaterThan(percentCap):
		percent = percentCap
	}
	p.Percent = percent
	return p
}
