package http

import (
	"net/http"
)

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.app.Reports.Weekly(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleQualityReport(w http.ResponseWriter, r *http.Request) {
	points, err := s.app.Reports.Quality(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleRollupReport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.app.Reports.Rollup(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTotalsReport(w http.ResponseWriter, r *http.Request) {
	totals, err := s.app.Reports.Totals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleCategoriesReport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.app.Reports.Categories(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePivotReport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.app.Reports.Pivot(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleInvestmentsReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.app.Reports.Investments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
