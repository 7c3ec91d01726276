package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction.
type Kind int

const (
	// Deposit increases the account balance.
	Deposit Kind = iota + 1
	// Withdrawal decreases the account balance.
	Withdrawal
)

// Kinds lists every transaction kind in menu order.
var Kinds = []Kind{Deposit, Withdrawal}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case Deposit:
		return "Deposit"
	case Withdrawal:
		return "Withdrawal"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == Deposit || k == Withdrawal
}

// Opposite returns the kind that undoes k.
func (k Kind) Opposite() Kind {
	if k == Deposit {
		return Withdrawal
	}
	return Deposit
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return Deposit, nil
	case "withdrawal":
		return Withdrawal, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

// MarshalText encodes the kind as its lowercase name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid transaction type %d", int(k))
	}
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText decodes a kind from its name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Transaction is a recorded deposit or withdrawal against one account.
// Refunds carry the id of the transaction they refund.
type Transaction struct {
	ID                    string          `json:"id"`
	Bank                  string          `json:"bank"`
	Account               string          `json:"account"`
	Kind                  Kind            `json:"type"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	Date                  time.Time       `json:"date"`
	RefundedTransactionID string          `json:"refunded_transaction_id,omitempty"`
}

// IsRefund reports whether the transaction refunds another one.
func (t *Transaction) IsRefund() bool {
	return t.RefundedTransactionID != ""
}

// References reports whether the transaction belongs to exactly the given bank
// and account. An empty account name only matches an account named "".
func (t *Transaction) References(bank, account string) bool {
	return t.Bank == bank && t.Account == account
}

// InBank reports whether the transaction belongs to any account of the bank.
func (t *Transaction) InBank(bank string) bool {
	return t.Bank == bank
}
