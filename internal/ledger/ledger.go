// Package ledger implements the expense ledger engine: the entry store,
// the category registry, the budget table, the aggregation functions and
// the facade that orchestrates them.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendbook/internal/core"
	"spendbook/internal/storage"
)

// fallbackCategory is assigned as the form selection when the registry
// has been emptied by removals.
const fallbackCategory core.CategoryName = "Other"

// Publisher receives best-effort notifications about ledger mutations.
type Publisher interface {
	PublishMutation(ctx context.Context, kind, id, month string) error
}

// EntryInput carries the raw field values for an add or edit. Amount and
// Date arrive as strings and are validated at this boundary. There is no
// ID field: IDs are assigned at creation and immutable.
type EntryInput struct {
	Date     string
	Amount   string
	Category core.CategoryName
	Location string
	What     string
}

func (in EntryInput) toEntry(id string) (core.Entry, error) {
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Entry{}, err
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Entry{}, err
	}
	e := core.Entry{
		ID:       id,
		Date:     date,
		Amount:   amount,
		Category: core.CategoryName(strings.TrimSpace(string(in.Category))),
		Location: strings.TrimSpace(in.Location),
		What:     strings.TrimSpace(in.What),
	}
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}
	return e, nil
}

func inputFromEntry(e core.Entry) EntryInput {
	return EntryInput{
		Date:     e.Date.String(),
		Amount:   e.Amount.String(),
		Category: e.Category,
		Location: e.Location,
		What:     e.What,
	}
}

// Form is the presentation form state the facade resets on month
// switches: today's date, blank amount and description, and the current
// category selection.
type Form struct {
	Date     string
	Amount   string
	Category core.CategoryName
	Location string
	What     string
}

// Ledger is the single entry point for the presentation layer. It
// exclusively owns the canonical collections for the process lifetime
// and enforces their invariants.
//
// Persistence is write-through and best-effort: the in-memory state is
// the source of truth, a failed write is logged and swallowed, and the
// already-committed mutation is never rolled back.
type Ledger struct {
	store  storage.Store // may be nil
	events Publisher     // may be nil
	logger *slog.Logger

	entries    *EntryStore
	categories *CategoryRegistry
	budgets    *BudgetTable

	month   core.Month
	form    Form
	editing string // entry ID under edit, "" when idle
	draft   EntryInput

	now   func() time.Time
	newID func() string
}

// New creates a ledger with empty collections and the default category
// set. Both store and events may be nil; the ledger then runs purely in
// memory.
func New(store storage.Store, events Publisher, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		store:      store,
		events:     events,
		logger:     logger,
		entries:    NewEntryStore(),
		categories: NewCategoryRegistry(nil),
		budgets:    NewBudgetTable(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	l.month = core.MonthOf(l.now())
	l.resetForm()
	return l
}

// Load reads persisted state from the store. It never fails: a missing
// or broken store, and any record that does not parse, is treated as
// empty state.
func (l *Ledger) Load(ctx context.Context) {
	if l.store == nil {
		l.logger.InfoContext(ctx, "No persistence adapter configured, running in memory")
		return
	}

	keys, err := l.store.Keys(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "Failed to enumerate persisted keys, starting empty", "error", err)
		return
	}

	for _, key := range keys {
		data, ok, err := l.store.Get(ctx, key)
		if err != nil {
			l.logger.WarnContext(ctx, "Failed to read persisted record", "key", key, "error", err)
			continue
		}
		if !ok {
			continue
		}
		switch {
		case key == keyCategories:
			l.categories = NewCategoryRegistry(decodeCategories(data))
		case strings.HasPrefix(key, keyPrefixEntries):
			for _, e := range decodeEntries(data) {
				l.entries.Put(e)
			}
		case strings.HasPrefix(key, keyPrefixBudgets):
			if m, ok := monthFromKey(key, keyPrefixBudgets); ok {
				l.budgets.Replace(m, decodeBudgets(data))
			}
		}
	}

	l.resetForm()
	l.logger.InfoContext(ctx, "Ledger loaded",
		"entries", l.entries.Len(),
		"categories", l.categories.Len())
}

// ActiveMonth returns the currently viewed month.
func (l *Ledger) ActiveMonth() core.Month {
	return l.month
}

// SelectMonth switches the viewed month and resets the form defaults.
// An in-progress edit survives the switch: the edited entry's own month
// can change through its date field, independent of the view.
func (l *Ledger) SelectMonth(m core.Month) {
	l.month = m
	l.resetForm()
}

// Form returns the current form state.
func (l *Ledger) Form() Form {
	return l.form
}

// SetForm replaces the form state, keeping the presentation's view of
// the form in sync with the facade.
func (l *Ledger) SetForm(f Form) {
	l.form = f
}

func (l *Ledger) resetForm() {
	category := l.form.Category
	if !l.categories.Contains(category) {
		category = l.firstCategory()
	}
	l.form = Form{
		Date:     core.Date{Time: l.now()}.String(),
		Category: category,
	}
}

func (l *Ledger) firstCategory() core.CategoryName {
	list := l.categories.List()
	if len(list) == 0 {
		return fallbackCategory
	}
	return list[0]
}

// AddEntry validates the input, assigns a fresh ID and inserts the
// entry. No state is mutated on a validation error.
func (l *Ledger) AddEntry(ctx context.Context, in EntryInput) (core.Entry, error) {
	e, err := in.toEntry(l.newID())
	if err != nil {
		return core.Entry{}, err
	}
	l.entries.Put(e)
	l.persistEntries(ctx, e.Month())
	l.publish(ctx, "entry.created", e.ID, e.Month().String())
	return e, nil
}

// Entry returns a single entry by ID.
func (l *Ledger) Entry(id string) (core.Entry, error) {
	e, ok := l.entries.Get(id)
	if !ok {
		return core.Entry{}, fmt.Errorf("entry %s: %w", id, core.ErrNotFound)
	}
	return e, nil
}

// UpdateEntry applies the same field validation as AddEntry. The ID is
// immutable. A date edit that crosses a month boundary moves the entry
// to the new month, and both month partitions are rewritten.
func (l *Ledger) UpdateEntry(ctx context.Context, id string, in EntryInput) (core.Entry, error) {
	old, ok := l.entries.Get(id)
	if !ok {
		return core.Entry{}, fmt.Errorf("entry %s: %w", id, core.ErrNotFound)
	}
	e, err := in.toEntry(id)
	if err != nil {
		return core.Entry{}, err
	}
	l.entries.Put(e)
	if old.Month().Equal(e.Month()) {
		l.persistEntries(ctx, e.Month())
	} else {
		l.persistEntries(ctx, old.Month(), e.Month())
	}
	l.publish(ctx, "entry.updated", e.ID, e.Month().String())
	return e, nil
}

// DeleteEntry removes an entry. A delete always wins over an in-progress
// edit of the same entry: the draft is discarded.
func (l *Ledger) DeleteEntry(ctx context.Context, id string) error {
	e, ok := l.entries.Get(id)
	if !ok {
		return fmt.Errorf("entry %s: %w", id, core.ErrNotFound)
	}
	l.entries.Delete(id)
	if l.editing == id {
		l.editing = ""
		l.draft = EntryInput{}
	}
	l.persistEntries(ctx, e.Month())
	l.publish(ctx, "entry.deleted", id, e.Month().String())
	return nil
}

// EntriesForMonth returns the month's entries in display order.
func (l *Ledger) EntriesForMonth(m core.Month) []core.Entry {
	return l.entries.ForMonth(m)
}

// Categories lists the registered category names in canonical order.
func (l *Ledger) Categories() []core.CategoryName {
	return l.categories.List()
}

// AddCategory registers a new category.
func (l *Ledger) AddCategory(ctx context.Context, name core.CategoryName) (core.CategoryName, error) {
	added, err := l.categories.Add(name)
	if err != nil {
		return "", err
	}
	l.persistCategories(ctx)
	l.publish(ctx, "category.added", string(added), "")
	return added, nil
}

// RemoveCategory drops a category from the registry and deletes its
// budgets across all months. Entries referencing the name are left
// untouched; the name becomes an orphan reference. When the removed
// category is the active form selection, the selection moves to the
// first remaining category.
func (l *Ledger) RemoveCategory(ctx context.Context, name core.CategoryName) error {
	if err := l.categories.Remove(name); err != nil {
		return err
	}
	touched := l.budgets.RemoveCategory(name)

	if l.form.Category.Key() == name.Key() {
		l.form.Category = l.firstCategory()
	}

	l.persistCategories(ctx)
	l.persistBudgets(ctx, touched...)
	l.publish(ctx, "category.removed", string(name), "")
	return nil
}

// SetBudget stores a budget limit for (month, category), normalizing the
// raw value. It never rejects; the stored value is returned.
func (l *Ledger) SetBudget(ctx context.Context, m core.Month, name core.CategoryName, raw string) decimal.Decimal {
	value := l.budgets.Set(m, name, raw)
	l.persistBudgets(ctx, m)
	l.publish(ctx, "budget.set", string(name), m.String())
	return value
}

// Budget returns the budget for (month, category), defaulting to 0.
func (l *Ledger) Budget(m core.Month, name core.CategoryName) decimal.Decimal {
	return l.budgets.Get(m, name)
}

// BudgetsForMonth returns the month's category -> budget mapping.
func (l *Ledger) BudgetsForMonth(m core.Month) map[core.CategoryName]decimal.Decimal {
	return l.budgets.ForMonth(m)
}

// Summary recomputes the month's aggregation snapshot from the current
// state. There is no caching here; reads always reflect the latest
// mutation.
func (l *Ledger) Summary(m core.Month) MonthSummary {
	return Summarize(m, l.entries.ForMonth(m), l.categories.List(), l.budgets.ForMonth(m))
}

// ClearMonth deletes the month's entries and budgets, returning the
// number of entries removed.
func (l *Ledger) ClearMonth(ctx context.Context, m core.Month) int {
	removed := l.entries.ClearMonth(m)
	l.budgets.ClearMonth(m)
	l.deleteKeys(ctx, entriesKey(m), budgetsKey(m))
	l.publish(ctx, "month.cleared", "", m.String())
	return removed
}

// ClearAll deletes every persisted record in this system's namespace and
// resets the in-memory state: entries and budgets empty, the registry
// reseeded with the default set, any in-progress edit discarded.
func (l *Ledger) ClearAll(ctx context.Context) {
	if l.store != nil {
		keys, err := l.store.Keys(ctx)
		if err != nil {
			l.logger.WarnContext(ctx, "Failed to enumerate keys for clear-all", "error", err)
		}
		for _, key := range keys {
			if ownedKey(key) {
				l.deleteKeys(ctx, key)
			}
		}
	}

	l.entries.Clear()
	l.budgets.Clear()
	l.categories = NewCategoryRegistry(nil)
	l.editing = ""
	l.draft = EntryInput{}
	l.form = Form{}
	l.resetForm()
	l.persistCategories(ctx)
	l.publish(ctx, "ledger.cleared", "", "")
}

// StartEdit opens an entry for modification, snapshotting it into a
// draft. The ledger moves from Idle to Editing.
func (l *Ledger) StartEdit(id string) (EntryInput, error) {
	e, ok := l.entries.Get(id)
	if !ok {
		return EntryInput{}, fmt.Errorf("entry %s: %w", id, core.ErrNotFound)
	}
	l.editing = id
	l.draft = inputFromEntry(e)
	return l.draft, nil
}

// Editing reports the entry under edit, if any.
func (l *Ledger) Editing() (string, bool) {
	return l.editing, l.editing != ""
}

// Draft returns the current draft values.
func (l *Ledger) Draft() EntryInput {
	return l.draft
}

// SetDraft replaces the draft values while editing.
func (l *Ledger) SetDraft(in EntryInput) {
	if l.editing != "" {
		l.draft = in
	}
}

// CancelEdit discards the draft and returns to Idle.
func (l *Ledger) CancelEdit() {
	l.editing = ""
	l.draft = EntryInput{}
}

// SaveEdit validates the draft like an update and commits it. On
// success the ledger returns to Idle; on a validation error it stays in
// Editing so the draft can be corrected.
func (l *Ledger) SaveEdit(ctx context.Context) (core.Entry, error) {
	if l.editing == "" {
		return core.Entry{}, fmt.Errorf("no entry under edit: %w", core.ErrNotFound)
	}
	e, err := l.UpdateEntry(ctx, l.editing, l.draft)
	if err != nil {
		return core.Entry{}, err
	}
	l.editing = ""
	l.draft = EntryInput{}
	return e, nil
}

// persistEntries rewrites the given month partitions. Failures are
// logged, never propagated: the in-memory mutation stands and the next
// write simply tries again.
func (l *Ledger) persistEntries(ctx context.Context, months ...core.Month) {
	if l.store == nil {
		return
	}
	for _, m := range months {
		entries := l.entries.ForMonth(m)
		if len(entries) == 0 {
			l.deleteKeys(ctx, entriesKey(m))
			continue
		}
		data, err := encodeEntries(entries)
		if err != nil {
			l.logger.WarnContext(ctx, "Failed to encode entries", "month", m.String(), "error", err)
			continue
		}
		if err := l.store.Set(ctx, entriesKey(m), data); err != nil {
			l.logger.WarnContext(ctx, "Failed to persist entries", "month", m.String(), "error", err)
		}
	}
}

func (l *Ledger) persistBudgets(ctx context.Context, months ...core.Month) {
	if l.store == nil {
		return
	}
	for _, m := range months {
		budgets := l.budgets.ForMonth(m)
		if len(budgets) == 0 {
			l.deleteKeys(ctx, budgetsKey(m))
			continue
		}
		data, err := encodeBudgets(budgets)
		if err != nil {
			l.logger.WarnContext(ctx, "Failed to encode budgets", "month", m.String(), "error", err)
			continue
		}
		if err := l.store.Set(ctx, budgetsKey(m), data); err != nil {
			l.logger.WarnContext(ctx, "Failed to persist budgets", "month", m.String(), "error", err)
		}
	}
}

func (l *Ledger) persistCategories(ctx context.Context) {
	if l.store == nil {
		return
	}
	data, err := encodeCategories(l.categories.List())
	if err != nil {
		l.logger.WarnContext(ctx, "Failed to encode categories", "error", err)
		return
	}
	if err := l.store.Set(ctx, keyCategories, data); err != nil {
		l.logger.WarnContext(ctx, "Failed to persist categories", "error", err)
	}
}

func (l *Ledger) deleteKeys(ctx context.Context, keys ...string) {
	if l.store == nil {
		return
	}
	for _, key := range keys {
		if err := l.store.Delete(ctx, key); err != nil {
			l.logger.WarnContext(ctx, "Failed to delete persisted record", "key", key, "error", err)
		}
	}
}

// publish sends a mutation event when a publisher is configured. Like
// persistence, this is fire and forget.
func (l *Ledger) publish(ctx context.Context, kind, id, month string) {
	if l.events == nil {
		return
	}
	if err := l.events.PublishMutation(ctx, kind, id, month); err != nil {
		l.logger.WarnContext(ctx, "Failed to publish mutation event",
			"kind", kind, "id", id, "error", err)
	}
}
