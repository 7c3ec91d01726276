package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AddTransaction records a new deposit or withdrawal against an account and
// updates its balance. Invalid amount text aborts the operation with no change.
func (l *Ledger) AddTransaction(bankName, accountName string, kind Kind, amountText, description string) (*AddDelta, error) {
	delta, err := l.validateAdd(bankName, accountName, kind, amountText, description)
	if err != nil {
		return nil, err
	}

	l.ApplyAddDelta(delta)
	return delta, nil
}

func (l *Ledger) validateAdd(bankName, accountName string, kind Kind, amountText, description string) (*AddDelta, error) {
	acc, err := l.requireAccount(bankName, accountName)
	if err != nil {
		return nil, err
	}

	if !kind.Valid() {
		return nil, fmt.Errorf("invalid transaction type %d", int(kind))
	}

	amount, err := ParseTransactionAmount(amountText)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		ID:          l.newID(),
		Bank:        bankName,
		Account:     accountName,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Date:        l.now(),
	}

	return &AddDelta{Transaction: tx, Account: acc}, nil
}

// ApplyAddDelta appends the transaction and applies it to the account.
func (l *Ledger) ApplyAddDelta(delta *AddDelta) {
	l.transactions = append(l.transactions, delta.Transaction)
	Apply(delta.Account, delta.Transaction.Kind, delta.Transaction.Amount)
}

// EditTransaction overwrites the kind, amount and description of a transaction
// and moves the owning account balance by the difference. The transaction keeps
// its bank and account. When that account no longer exists the fields are still
// overwritten but no balance is touched; the returned delta reports this.
func (l *Ledger) EditTransaction(id string, kind Kind, amountText, description string) (*EditDelta, error) {
	delta, err := l.validateEdit(id, kind, amountText, description)
	if err != nil {
		return nil, err
	}

	l.ApplyEditDelta(delta)
	return delta, nil
}

func (l *Ledger) validateEdit(id string, kind Kind, amountText, description string) (*EditDelta, error) {
	tx, err := l.requireTransaction(id)
	if err != nil {
		return nil, err
	}

	if !kind.Valid() {
		return nil, fmt.Errorf("invalid transaction type %d", int(kind))
	}

	amount, err := ParseEditAmount(tx, amountText)
	if err != nil {
		return nil, err
	}

	_, acc := l.Lookup(tx.Bank, tx.Account)

	return &EditDelta{
		Transaction: tx,
		Account:     acc,
		Before: Entry{
			Kind:        tx.Kind,
			Amount:      tx.Amount,
			Description: tx.Description,
			Date:        tx.Date,
		},
		After: Entry{
			Kind:        kind,
			Amount:      amount,
			Description: description,
			Date:        l.now(),
		},
	}, nil
}

// ApplyEditDelta reverses the old effect, overwrites the transaction and applies
// the new effect, in that order.
func (l *Ledger) ApplyEditDelta(delta *EditDelta) {
	if delta.Account != nil {
		Reverse(delta.Account, delta.Before.Kind, delta.Before.Amount)
	}

	tx := delta.Transaction
	tx.Kind = delta.After.Kind
	tx.Amount = delta.After.Amount
	tx.Description = delta.After.Description
	tx.Date = delta.After.Date

	if delta.Account != nil {
		Apply(delta.Account, delta.After.Kind, delta.After.Amount)
	}
}

// RefundTransaction appends a transaction of the opposite kind linked to the
// original. Blank amount text refunds the full original amount; larger amounts
// are clamped down to it. The original transaction is never modified.
//
// Each refund is clamped against the original amount only, not against what
// earlier refunds already returned, so repeated refunds can exceed the original
// in aggregate. RefundedTotal exposes the running total.
//
// Amount text that is not a number aborts the refund with an AmountError
// rather than falling back to the full amount; only blank text means "full".
func (l *Ledger) RefundTransaction(id, amountText string) (*RefundDelta, error) {
	delta, err := l.validateRefund(id, amountText)
	if err != nil {
		return nil, err
	}

	l.ApplyRefundDelta(delta)
	return delta, nil
}

func (l *Ledger) validateRefund(id, amountText string) (*RefundDelta, error) {
	orig, err := l.requireTransaction(id)
	if err != nil {
		return nil, err
	}

	requested, err := parseOptionalAmount(amountText, orig.Amount)
	if err != nil {
		return nil, err
	}

	amount := requested
	clamped := false
	if amount.GreaterThan(orig.Amount) {
		amount = orig.Amount
		clamped = true
	}

	_, acc := l.Lookup(orig.Bank, orig.Account)

	refund := &Transaction{
		ID:                    l.newID(),
		Bank:                  orig.Bank,
		Account:               orig.Account,
		Kind:                  orig.Kind.Opposite(),
		Amount:                amount,
		Description:           fmt.Sprintf("Refund for transaction %s", orig.ID),
		Date:                  l.now(),
		RefundedTransactionID: orig.ID,
	}

	return &RefundDelta{
		Original:  orig,
		Refund:    refund,
		Account:   acc,
		Requested: requested,
		Clamped:   clamped,
	}, nil
}

// ApplyRefundDelta appends the refund and applies it to the original's account.
func (l *Ledger) ApplyRefundDelta(delta *RefundDelta) {
	l.transactions = append(l.transactions, delta.Refund)
	if delta.Account != nil {
		Apply(delta.Account, delta.Refund.Kind, delta.Refund.Amount)
	}
}

// RefundsOf returns the refunds recorded against a transaction, in log order.
func (l *Ledger) RefundsOf(id string) []*Transaction {
	var refunds []*Transaction
	for _, tx := range l.transactions {
		if tx.RefundedTransactionID == id {
			refunds = append(refunds, tx)
		}
	}
	return refunds
}

// RefundedTotal returns the sum of all refunds recorded against a transaction.
func (l *Ledger) RefundedTotal(id string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.RefundsOf(id) {
		total = total.Add(tx.Amount)
	}
	return total
}

func (l *Ledger) requireAccount(bankName, accountName string) (*Account, error) {
	if len(l.banks) == 0 {
		return nil, ErrNoBanks
	}

	bank, acc := l.Lookup(bankName, accountName)
	if bank == nil {
		return nil, &NotFoundError{Bank: bankName}
	}
	if len(bank.Accounts) == 0 {
		return nil, ErrNoAccounts
	}
	if acc == nil {
		return nil, &NotFoundError{Bank: bankName, Account: accountName}
	}

	return acc, nil
}

func (l *Ledger) requireTransaction(id string) (*Transaction, error) {
	if len(l.transactions) == 0 {
		return nil, ErrNoTransactions
	}

	tx, ok := l.Transaction(id)
	if !ok {
		return nil, &NotFoundError{Transaction: id}
	}

	return tx, nil
}
