package ledger

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

// Persisted layout: three logical partitions in the key-value store.
//
//	categories          -> JSON array of category names (global)
//	entries:<YYYY-MM>   -> JSON array of entry records for that month
//	budgets:<YYYY-MM>   -> JSON object mapping category name to number
//
// Decoding is tolerant throughout: a record that fails to parse or whose
// fields fail shape validation is discarded and treated as empty, never
// surfaced as a fatal error.
const (
	keyCategories    = "categories"
	keyPrefixEntries = "entries:"
	keyPrefixBudgets = "budgets:"
)

func entriesKey(m core.Month) string { return keyPrefixEntries + m.String() }
func budgetsKey(m core.Month) string { return keyPrefixBudgets + m.String() }

// ownedKey reports whether a store key belongs to this system's
// namespace; clearAll only deletes keys recognized here.
func ownedKey(key string) bool {
	return key == keyCategories ||
		strings.HasPrefix(key, keyPrefixEntries) ||
		strings.HasPrefix(key, keyPrefixBudgets)
}

func monthFromKey(key, prefix string) (core.Month, bool) {
	m, err := core.ParseMonth(strings.TrimPrefix(key, prefix))
	if err != nil {
		return core.Month{}, false
	}
	return m, true
}

type entryRecord struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Location string          `json:"location,omitempty"`
	What     string          `json:"what"`
}

func encodeEntries(entries []core.Entry) ([]byte, error) {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entryRecord{
			ID:       e.ID,
			Date:     e.Date.String(),
			Amount:   e.Amount,
			Category: string(e.Category),
			Location: e.Location,
			What:     e.What,
		})
	}
	return json.Marshal(records)
}

// decodeEntries parses a month partition, dropping any record that fails
// shape validation.
func decodeEntries(data []byte) []core.Entry {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	var out []core.Entry
	for _, msg := range raw {
		var rec entryRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		date, err := core.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		e := core.Entry{
			ID:       rec.ID,
			Date:     date,
			Amount:   rec.Amount,
			Category: core.CategoryName(rec.Category),
			Location: rec.Location,
			What:     rec.What,
		}
		if e.ID == "" || e.Validate() != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

func encodeBudgets(budgets map[core.CategoryName]decimal.Decimal) ([]byte, error) {
	records := make(map[string]decimal.Decimal, len(budgets))
	for name, value := range budgets {
		records[string(name)] = value
	}
	return json.Marshal(records)
}

// decodeBudgets parses a budget partition. Malformed or negative values
// normalize to 0; blank names are skipped.
func decodeBudgets(data []byte) map[core.CategoryName]decimal.Decimal {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(map[core.CategoryName]decimal.Decimal, len(raw))
	for name, msg := range raw {
		if strings.TrimSpace(name) == "" {
			continue
		}
		var value decimal.Decimal
		if err := json.Unmarshal(msg, &value); err != nil || value.IsNegative() {
			value = decimal.Zero
		}
		out[core.CategoryName(name)] = value
	}
	return out
}

func encodeCategories(names []core.CategoryName) ([]byte, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, string(n))
	}
	return json.Marshal(out)
}

func decodeCategories(data []byte) []core.CategoryName {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make([]core.CategoryName, 0, len(raw))
	for _, n := range raw {
		out = append(out, core.CategoryName(n))
	}
	return out
}
