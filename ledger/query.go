package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// AccountBalance is the reported balance of one account.
type AccountBalance struct {
	Name    string
	Balance decimal.Decimal
}

// BankBalance is the reported balance of a bank and each of its accounts.
type BankBalance struct {
	Name     string
	Total    decimal.Decimal
	Accounts []AccountBalance
}

// Balances reports every bank's total and per-account balances, in ledger order.
// A bank without accounts has a zero total.
func (l *Ledger) Balances() []BankBalance {
	out := make([]BankBalance, 0, len(l.banks))
	for _, b := range l.banks {
		bb := BankBalance{
			Name:     b.Name,
			Total:    b.Total(),
			Accounts: make([]AccountBalance, 0, len(b.Accounts)),
		}
		for _, a := range b.Accounts {
			bb.Accounts = append(bb.Accounts, AccountBalance{Name: a.Name, Balance: a.Balance})
		}
		out = append(out, bb)
	}
	return out
}

// Filter selects transactions by exact bank, or by exact bank and account.
// The zero Filter matches everything. Account is ignored without Bank.
type Filter struct {
	Bank    string
	Account string
}

// Match reports whether the transaction passes the filter.
func (f Filter) Match(tx *Transaction) bool {
	switch {
	case f.Bank == "":
		return true
	case f.Account == "":
		return tx.InBank(f.Bank)
	default:
		return tx.References(f.Bank, f.Account)
	}
}

// Transactions returns the transactions matching the filter in log order.
// The returned slice is a copy; the transactions are shared with the ledger.
func (l *Ledger) Transactions(f Filter) []*Transaction {
	out := make([]*Transaction, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// TransactionBanks returns the distinct bank names referenced by the log,
// in order of first appearance.
func (l *Ledger) TransactionBanks() []string {
	var names []string
	for _, tx := range l.transactions {
		if !slices.Contains(names, tx.Bank) {
			names = append(names, tx.Bank)
		}
	}
	return names
}

// TransactionAccounts returns the distinct account names referenced by the log
// for a bank, in order of first appearance.
func (l *Ledger) TransactionAccounts(bank string) []string {
	var names []string
	for _, tx := range l.transactions {
		if tx.Bank == bank && !slices.Contains(names, tx.Account) {
			names = append(names, tx.Account)
		}
	}
	return names
}
