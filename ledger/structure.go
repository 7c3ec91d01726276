package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// AddBank appends a new bank without accounts.
func (l *Ledger) AddBank(name string) (*Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if b, _ := l.Lookup(name, ""); b != nil {
		return nil, &ConflictError{Bank: name}
	}

	bank := &Bank{Name: name, Accounts: make([]*Account, 0)}
	l.banks = append(l.banks, bank)
	return bank, nil
}

// AddAccount appends a new account to a bank. Blank balance text starts the
// account at zero; negative starting balances are allowed.
func (l *Ledger) AddAccount(bankName, name, balanceText string) (*Account, error) {
	if len(l.banks) == 0 {
		return nil, ErrNoBanks
	}

	name = strings.TrimSpace(name)
	bank, existing := l.Lookup(bankName, name)
	if bank == nil {
		return nil, &NotFoundError{Bank: bankName}
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if existing != nil {
		return nil, &ConflictError{Bank: bankName, Account: name}
	}

	balance, err := parseOptionalAmount(balanceText, decimal.Zero)
	if err != nil {
		return nil, err
	}

	acc := &Account{Name: name, Balance: balance}
	bank.Accounts = append(bank.Accounts, acc)
	return acc, nil
}

// RenameBank renames a bank and every transaction that references it. It returns
// the number of transactions updated.
func (l *Ledger) RenameBank(oldName, newName string) (int, error) {
	bank, _ := l.Lookup(oldName, "")
	if bank == nil {
		return 0, &NotFoundError{Bank: oldName}
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyName
	}
	if newName == oldName {
		return 0, nil
	}
	if other, _ := l.Lookup(newName, ""); other != nil {
		return 0, &ConflictError{Bank: newName}
	}

	bank.Name = newName

	n := 0
	for _, tx := range l.transactions {
		if tx.Bank == oldName {
			tx.Bank = newName
			n++
		}
	}
	return n, nil
}

// RenameAccount renames an account and every transaction that references it.
// It returns the number of transactions updated.
func (l *Ledger) RenameAccount(bankName, oldName, newName string) (int, error) {
	bank, acc := l.Lookup(bankName, oldName)
	if bank == nil {
		return 0, &NotFoundError{Bank: bankName}
	}
	if acc == nil {
		return 0, &NotFoundError{Bank: bankName, Account: oldName}
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyName
	}
	if newName == oldName {
		return 0, nil
	}
	if _, other := l.Lookup(bankName, newName); other != nil {
		return 0, &ConflictError{Bank: bankName, Account: newName}
	}

	acc.Name = newName

	n := 0
	for _, tx := range l.transactions {
		if tx.References(bankName, oldName) {
			tx.Account = newName
			n++
		}
	}
	return n, nil
}

// DeleteBank removes a bank with all its accounts and purges every transaction
// that references it. It returns the number of transactions removed.
func (l *Ledger) DeleteBank(name string) (int, error) {
	bank, _ := l.Lookup(name, "")
	if bank == nil {
		return 0, &NotFoundError{Bank: name}
	}

	l.banks = slices.DeleteFunc(l.banks, func(b *Bank) bool {
		return b == bank
	})

	return l.purge(func(tx *Transaction) bool {
		return tx.InBank(name)
	}), nil
}

// DeleteAccount removes an account from its bank and purges every transaction
// that references it. It returns the number of transactions removed.
func (l *Ledger) DeleteAccount(bankName, name string) (int, error) {
	bank, acc := l.Lookup(bankName, name)
	if bank == nil {
		return 0, &NotFoundError{Bank: bankName}
	}
	if acc == nil {
		return 0, &NotFoundError{Bank: bankName, Account: name}
	}

	bank.Accounts = slices.DeleteFunc(bank.Accounts, func(a *Account) bool {
		return a == acc
	})

	return l.purge(func(tx *Transaction) bool {
		return tx.References(bankName, name)
	}), nil
}

// purge drops every transaction matching del.
func (l *Ledger) purge(del func(*Transaction) bool) int {
	before := len(l.transactions)
	l.transactions = slices.DeleteFunc(l.transactions, del)
	return before - len(l.transactions)
}
