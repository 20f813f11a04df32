package http

import (
	"net/http"

	"registro/internal/core"
)

type addExpenseRequest struct {
	Member   string `json:"member"`
	Category string `json:"category"`
	Value    string `json:"value"`
	Date     string `json:"date"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	entries, err := s.app.Expenses.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	value, err := core.ParseMoney(req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := s.app.Expenses.Add(r.Context(), req.Member, req.Category, value, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
