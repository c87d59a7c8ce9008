package ledger

import (
	"sort"
	"strings"

	"spendbook/internal/core"
)

// DefaultCategories seeds the registry on first use and whenever a
// persisted category list turns out to be empty or entirely blank.
var DefaultCategories = []core.CategoryName{
	"Dining",
	"Entertainment",
	"Groceries",
	"Health",
	"Housing",
	"Transport",
	"Utilities",
	"Other",
}

// CategoryRegistry owns the global set of category names. Categories are
// not month-scoped; identity is case-insensitive.
type CategoryRegistry struct {
	byKey map[string]core.CategoryName
}

// NewCategoryRegistry builds a registry from the given names, trimming
// and deduplicating case-insensitively. When no usable name remains it
// falls back to the default set, so the registry starts non-empty.
func NewCategoryRegistry(names []core.CategoryName) *CategoryRegistry {
	r := &CategoryRegistry{byKey: make(map[string]core.CategoryName)}
	for _, n := range names {
		trimmed := core.CategoryName(strings.TrimSpace(string(n)))
		if trimmed.IsEmpty() {
			continue
		}
		if _, ok := r.byKey[trimmed.Key()]; ok {
			continue
		}
		r.byKey[trimmed.Key()] = trimmed
	}
	if len(r.byKey) == 0 {
		for _, n := range DefaultCategories {
			r.byKey[n.Key()] = n
		}
	}
	return r
}

// Add registers a new category name. The name is trimmed; empty names
// and case-insensitive duplicates are rejected.
func (r *CategoryRegistry) Add(name core.CategoryName) (core.CategoryName, error) {
	trimmed := core.CategoryName(strings.TrimSpace(string(name)))
	if trimmed.IsEmpty() {
		return "", core.ErrEmptyCategory
	}
	if _, ok := r.byKey[trimmed.Key()]; ok {
		return "", core.ErrDuplicateCategory
	}
	r.byKey[trimmed.Key()] = trimmed
	return trimmed, nil
}

// Remove deletes a category from the registry. Entries referencing the
// name are left alone; their references become orphans.
func (r *CategoryRegistry) Remove(name core.CategoryName) error {
	if _, ok := r.byKey[name.Key()]; !ok {
		return core.ErrNotFound
	}
	delete(r.byKey, name.Key())
	return nil
}

// Contains reports whether the name matches a registered category
// case-insensitively.
func (r *CategoryRegistry) Contains(name core.CategoryName) bool {
	_, ok := r.byKey[name.Key()]
	return ok
}

// Canonical returns the registered spelling for a name, when present.
func (r *CategoryRegistry) Canonical(name core.CategoryName) (core.CategoryName, bool) {
	c, ok := r.byKey[name.Key()]
	return c, ok
}

// List returns the category names in lexicographic order, which is the
// canonical display order.
func (r *CategoryRegistry) List() []core.CategoryName {
	out := make([]core.CategoryName, 0, len(r.byKey))
	for _, n := range r.byKey {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *CategoryRegistry) Len() int {
	return len(r.byKey)
}
