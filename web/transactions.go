package web

import (
	"errors"
	"net/http"

	errfmt "github.com/robinvdvleuten/maestro/errors"
	"github.com/robinvdvleuten/maestro/ledger"
)

// TransactionsResponse is the JSON response structure for the transactions endpoint.
type TransactionsResponse struct {
	Transactions []*ledger.Transaction `json:"transactions"`
	Count        int                   `json:"count"`
}

// CheckResponse is the JSON response structure for the check endpoint.
type CheckResponse struct {
	OK     bool               `json:"ok"`
	Errors []errfmt.ErrorJSON `json:"errors"`
}

// handleGetTransactions handles GET requests to /api/transactions.
//
// Query parameters:
//   - bank: only transactions of this bank.
//   - account: only transactions of this account; requires bank.
func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	f := ledger.Filter{
		Bank:    r.URL.Query().Get("bank"),
		Account: r.URL.Query().Get("account"),
	}
	if f.Account != "" && f.Bank == "" {
		http.Error(w, "account filter requires bank", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	txns := s.ledger.Transactions(f)
	writeJSONResponse(w, &TransactionsResponse{Transactions: txns, Count: len(txns)})
}

// handleGetCheck handles GET requests to /api/check.
// Integrity problems are reported in the body; the status is 200 either way.
func (s *Server) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := &CheckResponse{OK: true, Errors: []errfmt.ErrorJSON{}}

	var validationErrors *ledger.ValidationErrors
	if err := s.ledger.Validate(); errors.As(err, &validationErrors) {
		resp.OK = false
		resp.Errors = errfmt.NewJSONFormatter().FormatAllToSlice(validationErrors.Errors)
	}

	writeJSONResponse(w, resp)
}
