package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"registro/internal/core"
)

type recordFreelanceRequest struct {
	Date  string `json:"date"`
	Hours string `json:"hours"`
	Rate  string `json:"rate"`
	Week  string `json:"week"`
	Score int    `json:"score"`
	Paid  bool   `json:"paid"`
}

func (s *Server) handleListFreelance(w http.ResponseWriter, r *http.Request) {
	entries, err := s.app.Freelance.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRecordFreelance(w http.ResponseWriter, r *http.Request) {
	var req recordFreelanceRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil {
		writeError(w, core.ErrInvalidHours)
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, core.ErrInvalidRate)
		return
	}

	entry, err := s.app.Freelance.Record(r.Context(), date, hours, rate, req.Week, core.QualityScore(req.Score), req.Paid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type regradeRequest struct {
	Score int `json:"score"`
}

func (s *Server) handleRegradeFreelance(w http.ResponseWriter, r *http.Request) {
	var req regradeRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	entry, err := s.app.Freelance.Regrade(r.Context(), r.PathValue("id"), core.QualityScore(req.Score))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type markPaidRequest struct {
	Paid bool `json:"paid"`
}

func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	var req markPaidRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	entry, err := s.app.Freelance.MarkPaid(r.Context(), r.PathValue("id"), req.Paid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteFreelance(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Freelance.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
