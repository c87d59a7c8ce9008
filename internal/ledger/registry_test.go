package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbook/internal/core"
)

func TestNewCategoryRegistryFallsBackToDefaults(t *testing.T) {
	for _, names := range [][]core.CategoryName{
		nil,
		{},
		{"", "   ", "\t"},
	} {
		r := NewCategoryRegistry(names)
		assert.Equal(t, len(DefaultCategories), r.Len())
		assert.True(t, r.Contains("Groceries"))
	}
}

func TestNewCategoryRegistryDedupes(t *testing.T) {
	r := NewCategoryRegistry([]core.CategoryName{"Food", " food ", "FOOD", "Gas"})
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []core.CategoryName{"Food", "Gas"}, r.List())
}

func TestCategoryRegistryAdd(t *testing.T) {
	r := NewCategoryRegistry([]core.CategoryName{"Food"})

	added, err := r.Add("  Travel ")
	require.NoError(t, err)
	assert.Equal(t, core.CategoryName("Travel"), added)

	_, err = r.Add("   ")
	assert.ErrorIs(t, err, core.ErrEmptyCategory)

	_, err = r.Add("food")
	assert.ErrorIs(t, err, core.ErrDuplicateCategory)

	_, err = r.Add("TRAVEL")
	assert.ErrorIs(t, err, core.ErrDuplicateCategory)
}

func TestCategoryRegistryRemove(t *testing.T) {
	r := NewCategoryRegistry([]core.CategoryName{"Food", "Gas"})

	require.NoError(t, r.Remove("FOOD"))
	assert.False(t, r.Contains("Food"))
	assert.ErrorIs(t, r.Remove("Food"), core.ErrNotFound)

	// Removal may empty the registry; only load falls back to defaults.
	require.NoError(t, r.Remove("Gas"))
	assert.Equal(t, 0, r.Len())
}

func TestCategoryRegistryListIsLexicographic(t *testing.T) {
	r := NewCategoryRegistry([]core.CategoryName{"Zoo", "Apple", "Mango"})
	assert.Equal(t, []core.CategoryName{"Apple", "Mango", "Zoo"}, r.List())
}
