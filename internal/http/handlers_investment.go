package http

import (
	"net/http"

	"registro/internal/core"
)

type addInvestmentRequest struct {
	Member string `json:"member"`
	Type   string `json:"type"`
	Value  string `json:"value"`
	Date   string `json:"date"`
	Yield  string `json:"yield"`
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	entries, err := s.app.Investments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddInvestment(w http.ResponseWriter, r *http.Request) {
	var req addInvestmentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	value, err := core.ParseMoney(req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	yield := core.MoneyZero()
	if req.Yield != "" {
		yield, err = core.ParseMoney(req.Yield)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := s.app.Investments.Add(r.Context(), req.Member, req.Type, value, date, yield)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Investments.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
