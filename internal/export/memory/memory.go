// Package memory collects reports in process memory. It backs tests
// and dry runs of the export pipeline.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendbook/internal/export"
)

type Writer struct {
	mu      sync.Mutex
	reports []export.Report
}

var _ export.Writer = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

// WriteMonthReport records the report and returns a synthetic reference.
func (w *Writer) WriteMonthReport(_ context.Context, report export.Report) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.reports = append(w.reports, report)
	return fmt.Sprintf("memory://%s/%d", report.Month, len(w.reports)), nil
}

// Reports returns a copy of everything written so far.
func (w *Writer) Reports() []export.Report {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]export.Report, len(w.reports))
	copy(out, w.reports)
	return out
}
