package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbook/internal/core"
)

func TestSummarizeTotalsMatch(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	entries := []core.Entry{
		testEntry("a", core.NewDate(2025, 6, 1), 30, "Food"),
		testEntry("b", core.NewDate(2025, 6, 2), 20, "Gas"),
		testEntry("c", core.NewDate(2025, 6, 3), 5, "Ghost"), // orphan
	}
	known := []core.CategoryName{"Food", "Gas", "Rent"}

	s := Summarize(m, entries, known, nil)

	assert.Equal(t, "55", s.Total.String())

	// Category totals summed over all rows equal the month total.
	sum := decimal.Zero
	for _, row := range s.Categories {
		sum = sum.Add(row.Total)
	}
	assert.True(t, sum.Equal(s.Total))
}

func TestSummarizeZeroInitializesKnownCategories(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	s := Summarize(m, nil, []core.CategoryName{"Food", "Rent"}, nil)

	require.Len(t, s.Categories, 2)
	for _, row := range s.Categories {
		assert.True(t, row.Total.IsZero())
		assert.False(t, row.Orphan)
	}
}

func TestSummarizeOrphanAccumulates(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	entries := []core.Entry{
		testEntry("a", core.NewDate(2025, 6, 1), 12, "Ghost"),
		testEntry("b", core.NewDate(2025, 6, 2), 8, "Ghost"),
	}
	s := Summarize(m, entries, []core.CategoryName{"Food"}, nil)

	require.Len(t, s.Categories, 2)
	var ghost *CategoryTotal
	for i := range s.Categories {
		if s.Categories[i].Name == "Ghost" {
			ghost = &s.Categories[i]
		}
	}
	require.NotNil(t, ghost)
	assert.True(t, ghost.Orphan)
	assert.Equal(t, "20", ghost.Total.String())
}

func TestSummarizeBiggestCategoryTieBreak(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	entries := []core.Entry{
		testEntry("a", core.NewDate(2025, 6, 1), 30, "Gas"),
		testEntry("b", core.NewDate(2025, 6, 2), 30, "Food"),
	}
	s := Summarize(m, entries, []core.CategoryName{"Food", "Gas"}, nil)

	// Equal totals: the first name in lexicographic order wins.
	assert.Equal(t, core.CategoryName("Food"), s.Biggest)
}

func TestSummarizeNoWinnerWhenAllZero(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	s := Summarize(m, nil, []core.CategoryName{"Food", "Gas"}, nil)
	assert.Empty(t, s.Biggest)
}

func TestSummarizeBudgetProgress(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	entries := []core.Entry{
		testEntry("a", core.NewDate(2025, 6, 1), 120, "Food"),
		testEntry("b", core.NewDate(2025, 6, 2), 50, "Gas"),
	}
	budgets := map[core.CategoryName]decimal.Decimal{
		"Food": decimal.NewFromInt(100),
	}

	s := Summarize(m, entries, []core.CategoryName{"Food", "Gas"}, budgets)

	byName := map[core.CategoryName]BudgetProgress{}
	for _, p := range s.Budgets {
		byName[p.Category] = p
	}

	food := byName["Food"]
	assert.True(t, food.HasBudget)
	assert.True(t, food.Over)
	assert.Equal(t, "-20", food.Remaining.String())
	assert.Equal(t, "120", food.Percent.String())

	// Spending with no budget set: no-budget sentinel, never over.
	gas := byName["Gas"]
	assert.False(t, gas.HasBudget)
	assert.False(t, gas.Over)
	assert.Equal(t, "-50", gas.Remaining.String())
}

func TestSummarizePercentIsClamped(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	entries := []core.Entry{
		testEntry("a", core.NewDate(2025, 6, 1), 100000, "Food"),
	}
	budgets := map[core.CategoryName]decimal.Decimal{
		"Food": decimal.NewFromInt(1),
	}
	s := Summarize(m, entries, []core.CategoryName{"Food"}, budgets)
	require.Len(t, s.Budgets, 1)
	assert.Equal(t, "999", s.Budgets[0].Percent.String())
}

func TestSummarizeBudgetWithoutEntriesStillListed(t *testing.T) {
	m := core.NewMonth(2025, time.June)
	budgets := map[core.CategoryName]decimal.Decimal{
		"Phantom": decimal.NewFromInt(40),
	}
	s := Summarize(m, nil, []core.CategoryName{"Food"}, budgets)

	require.Len(t, s.Categories, 2)
	var phantom *BudgetProgress
	for i := range s.Budgets {
		if s.Budgets[i].Category == "Phantom" {
			phantom = &s.Budgets[i]
		}
	}
	require.NotNil(t, phantom)
	assert.True(t, phantom.HasBudget)
	assert.Equal(t, "40", phantom.Remaining.String())
	assert.False(t, phantom.Over)
}
