// Package ledger provides the in-memory ledger store for personal finances and the
// operations that keep account balances consistent with the transaction history.
//
// A ledger holds an ordered list of banks, each with named accounts carrying a running
// balance, and an ordered log of deposits and withdrawals recorded against those
// accounts. Every account balance equals its starting balance plus the signed effect
// of every transaction that references it.
//
// All mutating operations follow the same shape: the request is validated and turned
// into a delta without touching state, and only a fully computed delta is applied.
// An operation that fails validation therefore leaves the ledger unchanged.
//
// Example usage:
//
//	l := ledger.New()
//	_, _ = l.AddBank("Test Bank")
//	_, _ = l.AddAccount("Test Bank", "Checking", "100")
//
//	delta, err := l.AddTransaction("Test Bank", "Checking", ledger.Deposit, "50", "Paycheck")
//	if err != nil {
//	    var amountErr *ledger.AmountError
//	    if errors.As(err, &amountErr) {
//	        fmt.Println("not a number:", amountErr.Input)
//	    }
//	}
//	fmt.Println(delta.Account.Balance) // 150
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ledger is the combined in-memory state of banks, accounts and transactions.
// It is not safe for concurrent use; the interactive session drives it from a
// single goroutine and persists it after each mutating operation.
type Ledger struct {
	banks        []*Bank
	transactions []*Transaction

	now   func() time.Time
	newID func() string
}

// Setup is the bank/account tree as it is persisted in the setup document.
type Setup struct {
	Banks []*Bank `json:"banks"`
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used to timestamp created and edited transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator overrides how transaction ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		banks:        make([]*Bank, 0),
		transactions: make([]*Transaction, 0),
		now:          time.Now,
		newID:        newTransactionID,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Restore rebuilds a ledger from its persisted setup and transaction documents.
// The documents are taken as-is; call Validate to check their integrity.
func Restore(setup Setup, txns []*Transaction, opts ...Option) *Ledger {
	l := New(opts...)

	for _, b := range setup.Banks {
		if b == nil {
			continue
		}
		if b.Accounts == nil {
			b.Accounts = make([]*Account, 0)
		}
		l.banks = append(l.banks, b)
	}

	for _, tx := range txns {
		if tx != nil {
			l.transactions = append(l.transactions, tx)
		}
	}

	return l
}

// newTransactionID returns a random id rendered as 32 hex characters.
func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Setup returns the bank/account tree for persistence.
func (l *Ledger) Setup() Setup {
	return Setup{Banks: l.banks}
}

// Banks returns all banks in insertion order.
func (l *Ledger) Banks() []*Bank {
	return l.banks
}

// Bank returns a bank by name.
func (l *Ledger) Bank(name string) (*Bank, bool) {
	b, _ := l.Lookup(name, "")
	return b, b != nil
}

// Lookup resolves a (bank, account) name pair. It is the single place where
// entities are matched by name, so every operation and cascade agrees on identity.
// The bank is nil when no bank has that name; the account is nil when the bank
// is missing or has no account with that name.
func (l *Ledger) Lookup(bankName, accountName string) (*Bank, *Account) {
	for _, b := range l.banks {
		if b.Name != bankName {
			continue
		}
		for _, a := range b.Accounts {
			if a.Name == accountName {
				return b, a
			}
		}
		return b, nil
	}
	return nil, nil
}

// Transaction returns a transaction by id.
func (l *Ledger) Transaction(id string) (*Transaction, bool) {
	for _, tx := range l.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return nil, false
}

// Len returns the number of transactions in the log.
func (l *Ledger) Len() int {
	return len(l.transactions)
}
