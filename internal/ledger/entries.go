package ledger

import (
	"sort"

	"spendbook/internal/core"

	"github.com/shopspring/decimal"
)

// EntryStore owns the full set of entries across all months. Month views
// are derived by filtering on each entry's date.
type EntryStore struct {
	byID map[string]core.Entry
}

func NewEntryStore() *EntryStore {
	return &EntryStore{byID: make(map[string]core.Entry)}
}

// Put inserts or replaces an entry under its ID.
func (s *EntryStore) Put(e core.Entry) {
	s.byID[e.ID] = e
}

func (s *EntryStore) Get(id string) (core.Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Delete removes an entry, reporting whether it existed.
func (s *EntryStore) Delete(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

// ForMonth returns the month's entries in display order: newest date
// first, ties broken by descending ID. The ID tiebreak carries no
// meaning beyond making the order deterministic.
func (s *EntryStore) ForMonth(month core.Month) []core.Entry {
	var out []core.Entry
	for _, e := range s.byID {
		if e.Month().Equal(month) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date.String(), out[j].Date.String()
		if di != dj {
			return di > dj
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// MonthTotal sums a month's entry amounts.
func (s *EntryStore) MonthTotal(month core.Month) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.byID {
		if e.Month().Equal(month) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ClearMonth removes every entry belonging to the month and returns the
// count removed.
func (s *EntryStore) ClearMonth(month core.Month) int {
	removed := 0
	for id, e := range s.byID {
		if e.Month().Equal(month) {
			delete(s.byID, id)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (s *EntryStore) Clear() {
	s.byID = make(map[string]core.Entry)
}

// Months returns the distinct months that currently have entries.
func (s *EntryStore) Months() []core.Month {
	seen := make(map[string]core.Month)
	for _, e := range s.byID {
		m := e.Month()
		seen[m.String()] = m
	}
	out := make([]core.Month, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (s *EntryStore) Len() int {
	return len(s.byID)
}
