package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbook/internal/ledger"
	"spendbook/internal/storage/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ldg := ledger.New(memory.New(), nil, nil)
	return NewServer(":0", ldg, nil, &Options{
		SummaryCacheSize: 8,
		SummaryCacheTTL:  time.Minute,
	})
}

func doJSON(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateAndListEntries(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date:     "2025-06-10",
		Amount:   "12.50",
		Category: "Groceries",
		Location: "market",
		What:     "weekly shop",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[entryResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2025-06-10", created.Date)
	assert.Equal(t, "12.5", created.Amount)
	assert.Equal(t, "Groceries", created.Category)

	rec = doJSON(t, s, http.MethodGet, "/api/entries?month=2025-06", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decodeBody[[]entryResponse](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	rec = doJSON(t, s, http.MethodGet, "/api/entries?month=2025-07", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]entryResponse](t, rec))
}

func TestCreateEntryValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		req  entryRequest
	}{
		{"zero amount", entryRequest{Date: "2025-06-10", Amount: "0", Category: "Groceries", What: "x"}},
		{"negative amount", entryRequest{Date: "2025-06-10", Amount: "-5", Category: "Groceries", What: "x"}},
		{"garbage amount", entryRequest{Date: "2025-06-10", Amount: "abc", Category: "Groceries", What: "x"}},
		{"bad date", entryRequest{Date: "June 10", Amount: "5", Category: "Groceries", What: "x"}},
		{"blank description", entryRequest{Date: "2025-06-10", Amount: "5", Category: "Groceries", What: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/entries", tt.req)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}

	rec := doJSON(t, s, http.MethodGet, "/api/entries?month=2025-06", nil)
	assert.Empty(t, decodeBody[[]entryResponse](t, rec))
}

func TestCreateEntryMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/entries", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEntry(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-06-10", Amount: "10", Category: "Groceries", What: "shop",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[entryResponse](t, rec)

	rec = doJSON(t, s, http.MethodPut, "/api/entries/"+created.ID, entryRequest{
		Date: "2025-07-01", Amount: "20", Category: "Transport", What: "train",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[entryResponse](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "2025-07-01", updated.Date)

	// Entry moved to July.
	rec = doJSON(t, s, http.MethodGet, "/api/entries?month=2025-06", nil)
	assert.Empty(t, decodeBody[[]entryResponse](t, rec))
	rec = doJSON(t, s, http.MethodGet, "/api/entries?month=2025-07", nil)
	assert.Len(t, decodeBody[[]entryResponse](t, rec), 1)
}

func TestUpdateEntryNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPut, "/api/entries/missing", entryRequest{
		Date: "2025-06-10", Amount: "10", Category: "Groceries", What: "shop",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEntry(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-06-10", Amount: "10", Category: "Groceries", What: "shop",
	})
	created := decodeBody[entryResponse](t, rec)

	rec = doJSON(t, s, http.MethodDelete, "/api/entries/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/entries/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	initial := decodeBody[[]string](t, rec)
	assert.Contains(t, initial, "Groceries")

	rec = doJSON(t, s, http.MethodPost, "/api/categories", map[string]string{"name": "Books"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Case-insensitive duplicate.
	rec = doJSON(t, s, http.MethodPost, "/api/categories", map[string]string{"name": "  books "})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/categories", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/categories/Books", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/categories/Books", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBudgets(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPut, "/api/budgets", map[string]string{
		"month": "2025-06", "category": "Groceries", "amount": "100",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	set := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "100", set["value"])

	// Unparseable amounts normalize to zero instead of failing.
	rec = doJSON(t, s, http.MethodPut, "/api/budgets", map[string]string{
		"month": "2025-06", "category": "Transport", "amount": "garbage",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	set = decodeBody[map[string]string](t, rec)
	assert.Equal(t, "0", set["value"])

	rec = doJSON(t, s, http.MethodPut, "/api/budgets", map[string]string{
		"month": "not-a-month", "category": "Groceries", "amount": "100",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/budgets?month=2025-06", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	budgets := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "100", budgets["Groceries"])
}

func TestSummaryReflectsMutations(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/summary?month=2025-06", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[summaryResponse](t, rec)
	assert.Equal(t, "0", summary.Total)
	assert.Empty(t, summary.Biggest)

	doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-06-10", Amount: "30", Category: "Groceries", What: "shop",
	})

	// The cached summary must be invalidated by the mutation.
	rec = doJSON(t, s, http.MethodGet, "/api/summary?month=2025-06", nil)
	summary = decodeBody[summaryResponse](t, rec)
	assert.Equal(t, "30", summary.Total)
	assert.Equal(t, "Groceries", summary.Biggest)

	doJSON(t, s, http.MethodPut, "/api/budgets", map[string]string{
		"month": "2025-06", "category": "Groceries", "amount": "20",
	})

	rec = doJSON(t, s, http.MethodGet, "/api/summary?month=2025-06", nil)
	summary = decodeBody[summaryResponse](t, rec)
	var groceries *budgetProgressResponse
	for i := range summary.Budgets {
		if summary.Budgets[i].Category == "Groceries" {
			groceries = &summary.Budgets[i]
		}
	}
	require.NotNil(t, groceries)
	assert.True(t, groceries.Over)
	assert.Equal(t, "-10", groceries.Remaining)
}

func TestSummaryBadMonth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/summary?month=202506", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectMonth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPut, "/api/month", map[string]string{"month": "2025-03"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/month", nil)
	got := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "2025-03", got["month"])

	rec = doJSON(t, s, http.MethodPut, "/api/month", map[string]string{"month": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearMonth(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-06-10", Amount: "10", Category: "Groceries", What: "a",
	})
	doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-06-11", Amount: "20", Category: "Transport", What: "b",
	})
	doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-07-01", Amount: "5", Category: "Groceries", What: "c",
	})

	rec := doJSON(t, s, http.MethodPost, "/api/clear?month=2025-06", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(2), cleared["removed"])

	rec = doJSON(t, s, http.MethodGet, "/api/entries?month=2025-07", nil)
	assert.Len(t, decodeBody[[]entryResponse](t, rec), 1)
}

func TestClearAll(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/api/entries", entryRequest{
		Date: "2025-06-10", Amount: "10", Category: "Groceries", What: "a",
	})
	doJSON(t, s, http.MethodPost, "/api/categories", map[string]string{"name": "Books"})

	rec := doJSON(t, s, http.MethodPost, "/api/clear-all", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/entries?month=2025-06", nil)
	assert.Empty(t, decodeBody[[]entryResponse](t, rec))

	// Registry reseeds with the defaults; the custom category is gone.
	rec = doJSON(t, s, http.MethodGet, "/api/categories", nil)
	categories := decodeBody[[]string](t, rec)
	assert.Contains(t, categories, "Groceries")
	assert.NotContains(t, categories, "Books")
}
