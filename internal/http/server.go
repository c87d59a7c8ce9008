// Package http exposes the ledger over a small JSON API. The handlers
// stay thin: parsing, status mapping and caching live here, every rule
// lives in the ledger.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"spendbook/internal/cache"
	"spendbook/internal/ledger"
	"spendbook/internal/log"
)

type Server struct {
	http.Server

	ledger *ledger.Ledger
	logger *log.Logger

	// The ledger is single-owner state; requests serialize on this.
	mu sync.Mutex

	summaryCache *cache.LRU[ledger.MonthSummary]
}

// Options tune the server beyond its address.
type Options struct {
	SummaryCacheSize int
	SummaryCacheTTL  time.Duration
}

func defaultOptions() Options {
	return Options{
		SummaryCacheSize: 24,
		SummaryCacheTTL:  5 * time.Minute,
	}
}

// NewServer configures routes and returns a ready-to-run http.Server.
func NewServer(addr string, ldg *ledger.Ledger, logger *log.Logger, opts *Options) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	o := defaultOptions()
	if opts != nil {
		if opts.SummaryCacheSize > 0 {
			o.SummaryCacheSize = opts.SummaryCacheSize
		}
		if opts.SummaryCacheTTL > 0 {
			o.SummaryCacheTTL = opts.SummaryCacheTTL
		}
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           log.Middleware(logger)(log.RequestLogger(logger)(mux)),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ledger:       ldg,
		logger:       logger.WithComponent(log.ComponentHTTP),
		summaryCache: cache.NewLRU[ledger.MonthSummary](o.SummaryCacheSize, o.SummaryCacheTTL),
	}

	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("GET /api/month", s.handleGetMonth)
	mux.HandleFunc("PUT /api/month", s.handleSelectMonth)

	mux.HandleFunc("GET /api/entries", s.handleListEntries)
	mux.HandleFunc("POST /api/entries", s.handleCreateEntry)
	mux.HandleFunc("PUT /api/entries/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", s.handleDeleteEntry)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", s.handleRemoveCategory)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("PUT /api/budgets", s.handleSetBudget)

	mux.HandleFunc("GET /api/summary", s.handleSummary)

	mux.HandleFunc("POST /api/clear", s.handleClearMonth)
	mux.HandleFunc("POST /api/clear-all", s.handleClearAll)

	return s
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
