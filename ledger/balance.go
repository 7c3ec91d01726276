package ledger

import (
	"github.com/shopspring/decimal"
)

// SignedAmount returns the effect a transaction of the given kind and amount
// has on an account balance: positive for deposits, negative for withdrawals.
func SignedAmount(kind Kind, amount decimal.Decimal) decimal.Decimal {
	if kind == Withdrawal {
		return amount.Neg()
	}
	return amount
}

// Apply adds the effect of a transaction to the account balance. There is no
// floor; balances may go negative.
func Apply(acc *Account, kind Kind, amount decimal.Decimal) {
	acc.Balance = acc.Balance.Add(SignedAmount(kind, amount))
}

// Reverse removes the effect of a transaction from the account balance.
// Reverse(acc, k, a) exactly undoes Apply(acc, k, a).
func Reverse(acc *Account, kind Kind, amount decimal.Decimal) {
	acc.Balance = acc.Balance.Sub(SignedAmount(kind, amount))
}
