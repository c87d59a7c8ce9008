package http

import (
	"net/http"
	"strings"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
)

type entryResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Location string `json:"location,omitempty"`
	What     string `json:"what"`
}

func toEntryResponse(e core.Entry) entryResponse {
	return entryResponse{
		ID:       e.ID,
		Date:     e.Date.String(),
		Amount:   e.Amount.String(),
		Category: string(e.Category),
		Location: e.Location,
		What:     e.What,
	}
}

type entryRequest struct {
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Location string `json:"location"`
	What     string `json:"what"`
}

func (req entryRequest) toInput() ledger.EntryInput {
	return ledger.EntryInput{
		Date:     req.Date,
		Amount:   req.Amount,
		Category: core.CategoryName(req.Category),
		Location: req.Location,
		What:     req.What,
	}
}

type categoryTotalResponse struct {
	Name   string `json:"name"`
	Total  string `json:"total"`
	Orphan bool   `json:"orphan"`
}

type budgetProgressResponse struct {
	Category  string `json:"category"`
	Budget    string `json:"budget"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	HasBudget bool   `json:"has_budget"`
	Over      bool   `json:"over"`
	Percent   string `json:"percent"`
}

type summaryResponse struct {
	Month      string                   `json:"month"`
	Total      string                   `json:"total"`
	Biggest    string                   `json:"biggest,omitempty"`
	Categories []categoryTotalResponse  `json:"categories"`
	Budgets    []budgetProgressResponse `json:"budgets"`
}

func toSummaryResponse(s ledger.MonthSummary) summaryResponse {
	resp := summaryResponse{
		Month:      s.Month.String(),
		Total:      s.Total.String(),
		Biggest:    string(s.Biggest),
		Categories: make([]categoryTotalResponse, 0, len(s.Categories)),
		Budgets:    make([]budgetProgressResponse, 0, len(s.Budgets)),
	}
	for _, c := range s.Categories {
		resp.Categories = append(resp.Categories, categoryTotalResponse{
			Name:   string(c.Name),
			Total:  c.Total.String(),
			Orphan: c.Orphan,
		})
	}
	for _, b := range s.Budgets {
		resp.Budgets = append(resp.Budgets, budgetProgressResponse{
			Category:  string(b.Category),
			Budget:    b.Budget.String(),
			Spent:     b.Spent.String(),
			Remaining: b.Remaining.String(),
			HasBudget: b.HasBudget,
			Over:      b.Over,
			Percent:   b.Percent.String(),
		})
	}
	return resp
}

func (s *Server) invalidateSummary(months ...core.Month) {
	for _, m := range months {
		s.summaryCache.Delete(m.String())
	}
}

func (s *Server) handleGetMonth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	m := s.ledger.ActiveMonth()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"month": m.String()})
}

func (s *Server) handleSelectMonth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month string `json:"month"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	m, err := core.ParseMonth(req.Month)
	if err != nil {
		writeBadRequest(w, "invalid month: expected YYYY-MM")
		return
	}
	s.mu.Lock()
	s.ledger.SelectMonth(m)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"month": m.String()})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := monthParam(r, s.ledger.ActiveMonth())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	entries := s.ledger.EntriesForMonth(m)
	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.ledger.AddEntry(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateSummary(e.Month())
	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.ledger.Entry(id)
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := s.ledger.UpdateEntry(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateSummary(old.Month(), e.Month())
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.ledger.Entry(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.ledger.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateSummary(e.Month())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.ledger.Categories()
	resp := make([]string, 0, len(names))
	for _, name := range names {
		resp = append(resp, string(name))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.ledger.AddCategory(r.Context(), core.CategoryName(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	// A new category shows up as a zero row in every cached summary.
	s.summaryCache.Purge()
	writeJSON(w, http.StatusCreated, map[string]string{"name": string(added)})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.RemoveCategory(r.Context(), core.CategoryName(name)); err != nil {
		writeError(w, err)
		return
	}
	s.summaryCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := monthParam(r, s.ledger.ActiveMonth())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	budgets := s.ledger.BudgetsForMonth(m)
	resp := make(map[string]string, len(budgets))
	for name, value := range budgets {
		resp[string(name)] = value.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month    string `json:"month"`
		Category string `json:"category"`
		Amount   string `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	m, err := core.ParseMonth(req.Month)
	if err != nil {
		writeBadRequest(w, "invalid month: expected YYYY-MM")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		writeBadRequest(w, "category is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value := s.ledger.SetBudget(r.Context(), m, core.CategoryName(req.Category), req.Amount)
	s.invalidateSummary(m)
	writeJSON(w, http.StatusOK, map[string]string{
		"month":    m.String(),
		"category": req.Category,
		"value":    value.String(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := monthParam(r, s.ledger.ActiveMonth())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if summary, ok := s.summaryCache.Get(m.String()); ok {
		s.logger.DebugContext(r.Context(), "Summary cache hit", "month", m.String())
		writeJSON(w, http.StatusOK, toSummaryResponse(summary))
		return
	}

	summary := s.ledger.Summary(m)
	s.summaryCache.Set(m.String(), summary)
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) handleClearMonth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := monthParam(r, s.ledger.ActiveMonth())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	removed := s.ledger.ClearMonth(r.Context(), m)
	s.invalidateSummary(m)
	writeJSON(w, http.StatusOK, map[string]any{
		"month":   m.String(),
		"removed": removed,
	})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.ClearAll(r.Context())
	s.summaryCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
