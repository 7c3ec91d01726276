package ledger

import (
	"github.com/shopspring/decimal"
)

// Bank is a named grouping of accounts. Names are unique within a ledger.
type Bank struct {
	Name     string     `json:"name"`
	Accounts []*Account `json:"accounts"`
}

// Account is a named balance-holding entity within a bank. Names are unique
// within their bank.
type Account struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Total returns the sum of the balances of all accounts in the bank.
func (b *Bank) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range b.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// Account returns the account with the given name.
func (b *Bank) Account(name string) (*Account, bool) {
	for _, a := range b.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
