// Package http exposes the ledgers and reports as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"registro/internal/backend"
)

type Server struct {
	http.Server
	app *backend.App
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, app *backend.App) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		app: app,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /freelance", s.wrap(s.handleListFreelance))
	mux.HandleFunc("POST /freelance", s.wrap(s.handleRecordFreelance))
	mux.HandleFunc("PUT /freelance/{id}/score", s.wrap(s.handleRegradeFreelance))
	mux.HandleFunc("PUT /freelance/{id}/paid", s.wrap(s.handleMarkPaid))
	mux.HandleFunc("DELETE /freelance/{id}", s.wrap(s.handleDeleteFreelance))

	mux.HandleFunc("GET /income", s.wrap(s.handleListIncome))
	mux.HandleFunc("POST /income", s.wrap(s.handlePostIncome))
	mux.HandleFunc("POST /income/clt", s.wrap(s.handleRegisterCLT))
	mux.HandleFunc("DELETE /income/{id}", s.wrap(s.handleDeleteIncome))

	mux.HandleFunc("GET /expenses", s.wrap(s.handleListExpenses))
	mux.HandleFunc("POST /expenses", s.wrap(s.handleAddExpense))
	mux.HandleFunc("DELETE /expenses/{id}", s.wrap(s.handleDeleteExpense))

	mux.HandleFunc("GET /investments", s.wrap(s.handleListInvestments))
	mux.HandleFunc("POST /investments", s.wrap(s.handleAddInvestment))
	mux.HandleFunc("DELETE /investments/{id}", s.wrap(s.handleDeleteInvestment))

	mux.HandleFunc("GET /loans", s.wrap(s.handleListLoans))
	mux.HandleFunc("POST /loans", s.wrap(s.handleCreateLoan))
	mux.HandleFunc("POST /loans/{id}/pay", s.wrap(s.handlePayInstallment))
	mux.HandleFunc("POST /loans/{id}/settle", s.wrap(s.handleSettleLoan))
	mux.HandleFunc("DELETE /loans/{id}", s.wrap(s.handleDeleteLoan))
	mux.HandleFunc("GET /loans/metrics", s.wrap(s.handleLoanMetrics))

	mux.HandleFunc("GET /reports/weekly", s.wrap(s.handleWeeklyReport))
	mux.HandleFunc("GET /reports/quality", s.wrap(s.handleQualityReport))
	mux.HandleFunc("GET /reports/rollup", s.wrap(s.handleRollupReport))
	mux.HandleFunc("GET /reports/totals", s.wrap(s.handleTotalsReport))
	mux.HandleFunc("GET /reports/categories", s.wrap(s.handleCategoriesReport))
	mux.HandleFunc("GET /reports/pivot", s.wrap(s.handlePivotReport))
	mux.HandleFunc("GET /reports/investments", s.wrap(s.handleInvestmentsReport))

	mux.HandleFunc("POST /refresh", s.wrap(s.handleRefresh))

	return s
}

// handleRefresh drops every cached ledger view so the next reads hit storage.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.app.Freelance.Refresh()
	s.app.Income.Refresh()
	s.app.Expenses.Refresh()
	s.app.Investments.Refresh()
	s.app.Loans.Refresh()
	slog.InfoContext(r.Context(), "Ledger caches invalidated")
	writeJSON(w, http.StatusNoContent, nil)
}

// wrap adds security headers and request logging to a handler.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
