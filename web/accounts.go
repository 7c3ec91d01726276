package web

import (
	"net/http"
)

// BankInfo lists a bank and the names of its accounts.
type BankInfo struct {
	Name     string   `json:"name"`
	Accounts []string `json:"accounts"`
}

// BanksResponse is the JSON response structure for the banks endpoint.
type BanksResponse struct {
	Banks []BankInfo `json:"banks"`
}

// handleGetBanks handles GET requests to /api/banks.
// Returns every bank with its account names, in ledger order.
func (s *Server) handleGetBanks(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	banks := make([]BankInfo, 0, len(s.ledger.Banks()))
	for _, b := range s.ledger.Banks() {
		info := BankInfo{Name: b.Name, Accounts: make([]string, 0, len(b.Accounts))}
		for _, a := range b.Accounts {
			info.Accounts = append(info.Accounts, a.Name)
		}
		banks = append(banks, info)
	}

	writeJSONResponse(w, &BanksResponse{Banks: banks})
}
