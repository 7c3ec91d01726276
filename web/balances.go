package web

import (
	"net/http"

	"github.com/robinvdvleuten/maestro/output"
	"github.com/shopspring/decimal"
)

// BalancesResponse is the JSON response structure for the balances endpoint.
type BalancesResponse struct {
	Currency string                 `json:"currency"`
	Banks    []*BankBalanceResponse `json:"banks"`
}

// BankBalanceResponse is a bank total with its account balances.
type BankBalanceResponse struct {
	Name     string                    `json:"name"`
	Total    decimal.Decimal           `json:"total"`
	Display  string                    `json:"display"`
	Accounts []*AccountBalanceResponse `json:"accounts"`
}

// AccountBalanceResponse is the balance of one account.
type AccountBalanceResponse struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Display string          `json:"display"`
}

// handleGetBalances handles GET requests to /api/balances.
// Amounts are given as exact decimals plus a display string in the
// configured currency, e.g. "$1,234.50".
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := s.ledger.Balances()
	resp := &BalancesResponse{
		Currency: s.Currency,
		Banks:    make([]*BankBalanceResponse, 0, len(balances)),
	}
	for _, bb := range balances {
		bank := &BankBalanceResponse{
			Name:     bb.Name,
			Total:    bb.Total,
			Display:  output.FormatMoney(bb.Total, s.Currency),
			Accounts: make([]*AccountBalanceResponse, 0, len(bb.Accounts)),
		}
		for _, ab := range bb.Accounts {
			bank.Accounts = append(bank.Accounts, &AccountBalanceResponse{
				Name:    ab.Name,
				Balance: ab.Balance,
				Display: output.FormatMoney(ab.Balance, s.Currency),
			})
		}
		resp.Banks = append(resp.Banks, bank)
	}

	writeJSONResponse(w, resp)
}
