package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"registro/internal/backend"
	"registro/internal/store/memstore"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app := backend.Wire(memstore.New(), nil, []string{"Adhara", "Breno", "Sara"})
	srv := NewServer(":0", app)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestRecordFreelanceOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/freelance",
		`{"date":"2025-03-10","hours":"10","rate":"5","week":"Semana 1","score":4,"paid":false}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var entry struct {
		ID          string `json:"id"`
		AdjustedBRL string `json:"adjusted_brl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatal(err)
	}
	if entry.ID == "" {
		t.Error("response should carry the generated ID")
	}
	if entry.AdjustedBRL != "1800" {
		t.Errorf("adjusted_brl = %q, want 1800", entry.AdjustedBRL)
	}
}

func TestRecordFreelanceValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/freelance",
		`{"date":"2025-03-10","hours":"10","rate":"5","week":"Semana 1","score":9,"paid":false}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("invalid score status = %d, want 422", resp.StatusCode)
	}
}

func TestCLTDuplicateConflict(t *testing.T) {
	ts := newTestServer(t)
	body := `{"member":"Adhara","salary":"3000","stipend":"800","year":2025,"month":3}`

	if resp := postJSON(t, ts, "/income/clt", body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first registration = %d, want 201", resp.StatusCode)
	}
	if resp := postJSON(t, ts, "/income/clt", body); resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate registration = %d, want 409", resp.StatusCode)
	}
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/loans",
		`{"name":"Banco","direction":"Recebido","principal":"1000","rate_pct":"10","installments":5,"date":"2025-01-15"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create loan = %d, want 201", resp.StatusCode)
	}
	var loan struct {
		ID          string `json:"id"`
		Total       string `json:"total"`
		Installment string `json:"installment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loan); err != nil {
		t.Fatal(err)
	}
	if loan.Total != "1100" || loan.Installment != "220" {
		t.Errorf("total/installment = %s/%s, want 1100/220", loan.Total, loan.Installment)
	}

	pay := postJSON(t, ts, "/loans/"+loan.ID+"/pay", `{"date":"2025-02-05"}`)
	if pay.StatusCode != http.StatusOK {
		t.Fatalf("pay = %d, want 200", pay.StatusCode)
	}

	settle := postJSON(t, ts, "/loans/"+loan.ID+"/settle", `{"date":"2025-03-05"}`)
	if settle.StatusCode != http.StatusOK {
		t.Fatalf("settle = %d, want 200", settle.StatusCode)
	}
	var settled struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(settle.Body).Decode(&settled); err != nil {
		t.Fatal(err)
	}
	if settled.Status != "Quitado" {
		t.Errorf("status = %s, want Quitado", settled.Status)
	}

	// Settled is terminal.
	again := postJSON(t, ts, "/loans/"+loan.ID+"/pay", `{"date":"2025-04-05"}`)
	if again.StatusCode != http.StatusConflict {
		t.Errorf("pay on settled loan = %d, want 409", again.StatusCode)
	}

	// The borrowed-loan movements landed in family income.
	incomeResp, err := http.Get(ts.URL + "/income")
	if err != nil {
		t.Fatal(err)
	}
	defer incomeResp.Body.Close()
	var income struct {
		Entries []json.RawMessage `json:"entries"`
		Total   string            `json:"total"`
	}
	if err := json.NewDecoder(incomeResp.Body).Decode(&income); err != nil {
		t.Fatal(err)
	}
	// Principal 1000 + installment 220 + settlement 880.
	if len(income.Entries) != 3 {
		t.Errorf("income postings = %d, want 3", len(income.Entries))
	}
	if income.Total != "2100" {
		t.Errorf("income total = %s, want 2100", income.Total)
	}
}

func TestDeleteMissingRowIs404(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/expenses/nope", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestReportsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts, "/freelance",
		`{"date":"2025-03-10","hours":"10","rate":"5","week":"Semana 1","score":3,"paid":true}`)
	postJSON(t, ts, "/expenses",
		`{"member":"Adhara","category":"Mercado","value":"100","date":"2025-03-11"}`)

	for _, path := range []string{
		"/reports/weekly",
		"/reports/quality",
		"/reports/rollup",
		"/reports/totals",
		"/reports/categories",
		"/reports/pivot",
		"/reports/investments",
		"/loans/metrics",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}
