package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"registro/internal/core"
)

type createLoanRequest struct {
	Name         string `json:"name"`
	Direction    string `json:"direction"`
	Principal    string `json:"principal"`
	RatePct      string `json:"rate_pct"`
	Installments int    `json:"installments"`
	Date         string `json:"date"`
	Notes        string `json:"notes"`
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.app.Loans.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	direction, err := core.ParseLoanDirection(req.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	principal, err := core.ParseMoney(req.Principal)
	if err != nil {
		writeError(w, err)
		return
	}
	ratePct := decimal.Zero
	if req.RatePct != "" {
		ratePct, err = decimal.NewFromString(req.RatePct)
		if err != nil {
			writeError(w, core.ErrInvalidInterestRate)
			return
		}
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := s.app.Loans.Create(r.Context(), req.Name, direction, principal, ratePct, req.Installments, date, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// paymentDate uses the request's date when given, today otherwise.
func paymentDate(dateStr string) (core.Date, error) {
	if dateStr == "" {
		now := time.Now()
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	return core.ParseDate(dateStr)
}

type loanPaymentRequest struct {
	Date string `json:"date"`
}

func (s *Server) handlePayInstallment(w http.ResponseWriter, r *http.Request) {
	var req loanPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	date, err := paymentDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := s.app.Loans.PayInstallment(r.Context(), r.PathValue("id"), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (s *Server) handleSettleLoan(w http.ResponseWriter, r *http.Request) {
	var req loanPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	date, err := paymentDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := s.app.Loans.Settle(r.Context(), r.PathValue("id"), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Loans.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleLoanMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.app.Loans.Metrics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
