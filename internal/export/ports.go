// Package export renders a month's aggregation snapshot into a tabular
// report and defines the port that report sinks implement.
package export

import (
	"context"
	"time"

	"spendbook/internal/ledger"
)

// Report is the flattened, sink-agnostic form of a month summary.
type Report struct {
	Month       string
	Total       string
	Biggest     string
	Rows        []Row
	GeneratedAt time.Time
}

// Row is one category line of the report.
type Row struct {
	Category  string
	Spent     string
	Budget    string
	Remaining string
	Orphan    bool
}

// Writer delivers a report to its destination and returns a reference
// to where it landed.
type Writer interface {
	WriteMonthReport(ctx context.Context, report Report) (string, error)
}

// BuildReport flattens a month summary into a report. Budget columns
// are blank for categories without a budget.
func BuildReport(summary ledger.MonthSummary, generatedAt time.Time) Report {
	report := Report{
		Month:       summary.Month.String(),
		Total:       summary.Total.String(),
		Biggest:     string(summary.Biggest),
		Rows:        make([]Row, 0, len(summary.Categories)),
		GeneratedAt: generatedAt,
	}

	progress := make(map[string]ledger.BudgetProgress, len(summary.Budgets))
	for _, b := range summary.Budgets {
		progress[string(b.Category)] = b
	}

	for _, c := range summary.Categories {
		row := Row{
			Category: string(c.Name),
			Spent:    c.Total.String(),
			Orphan:   c.Orphan,
		}
		if p, ok := progress[string(c.Name)]; ok && p.HasBudget {
			row.Budget = p.Budget.String()
			row.Remaining = p.Remaining.String()
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}
