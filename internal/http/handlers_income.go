package http

import (
	"net/http"

	"registro/internal/core"
	"registro/internal/services"
)

type postIncomeRequest struct {
	Member string `json:"member"`
	Type   string `json:"type"`
	Value  string `json:"value"`
	Date   string `json:"date"`
}

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.IncomeFilter{
		Member: q.Get("member"),
		Type:   q.Get("type"),
		Month:  q.Get("month"),
	}
	out, err := s.app.Reports.Income(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePostIncome(w http.ResponseWriter, r *http.Request) {
	var req postIncomeRequest
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

	entry, err := s.app.Income.Post(r.Context(), req.Member, req.Type, value, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type registerCLTRequest struct {
	Member  string `json:"member"`
	Salary  string `json:"salary"`
	Stipend string `json:"stipend"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

func (s *Server) handleRegisterCLT(w http.ResponseWriter, r *http.Request) {
	var req registerCLTRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	salary, err := core.ParseMoney(req.Salary)
	if err != nil {
		writeError(w, err)
		return
	}
	stipend, err := core.ParseMoney(req.Stipend)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := s.app.Income.RegisterCLT(r.Context(), req.Member, salary, stipend, req.Year, req.Month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entries)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Income.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
