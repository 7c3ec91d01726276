package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when amount text cannot be used for an operation.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrEmptyName is returned when a bank or account name is blank.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrBankExists is returned when a bank name is already taken.
	ErrBankExists = errors.New("bank already exists")

	// ErrAccountExists is returned when an account name is already taken in its bank.
	ErrAccountExists = errors.New("account already exists")

	// ErrBankNotFound is returned when no bank has the requested name.
	ErrBankNotFound = errors.New("bank not found")

	// ErrAccountNotFound is returned when the bank has no account with the requested name.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when no transaction has the requested id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNoBanks is returned by operations that need at least one bank.
	ErrNoBanks = errors.New("no banks available")

	// ErrNoAccounts is returned by operations that need the bank to have an account.
	ErrNoAccounts = errors.New("no accounts available for this bank")

	// ErrNoTransactions is returned by operations that need at least one transaction.
	ErrNoTransactions = errors.New("no transactions available")
)

// AmountError is returned when user-supplied amount text is rejected.
type AmountError struct {
	Input  string // Text as entered
	Reason string // Why it was rejected
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Input, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidAmount).
func (e *AmountError) Unwrap() error {
	return ErrInvalidAmount
}

// NotFoundError is returned when a referenced bank, account or transaction does not exist.
type NotFoundError struct {
	Bank        string
	Account     string
	Transaction string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Transaction != "":
		return fmt.Sprintf("transaction %s not found", e.Transaction)
	case e.Account != "":
		return fmt.Sprintf("account '%s' not found in bank '%s'", e.Account, e.Bank)
	default:
		return fmt.Sprintf("bank '%s' not found", e.Bank)
	}
}

func (e *NotFoundError) Unwrap() error {
	switch {
	case e.Transaction != "":
		return ErrTransactionNotFound
	case e.Account != "":
		return ErrAccountNotFound
	default:
		return ErrBankNotFound
	}
}

// ConflictError is returned when a name is already used at its scope.
type ConflictError struct {
	Bank    string
	Account string // Empty for bank-level conflicts
}

func (e *ConflictError) Error() string {
	if e.Account != "" {
		return fmt.Sprintf("account '%s' already exists in bank '%s'", e.Account, e.Bank)
	}
	return fmt.Sprintf("bank '%s' already exists", e.Bank)
}

func (e *ConflictError) Unwrap() error {
	if e.Account != "" {
		return ErrAccountExists
	}
	return ErrBankExists
}

// OrphanedTransactionError reports a transaction whose bank or account does not exist.
type OrphanedTransactionError struct {
	Transaction *Transaction
}

func (e *OrphanedTransactionError) Error() string {
	return fmt.Sprintf("transaction %s references unknown account '%s - %s'",
		e.Transaction.ID, e.Transaction.Bank, e.Transaction.Account)
}

// DuplicateNameError reports two banks, or two accounts of one bank, sharing a name.
type DuplicateNameError struct {
	Bank    string
	Account string // Empty for duplicate banks
}

func (e *DuplicateNameError) Error() string {
	if e.Account != "" {
		return fmt.Sprintf("bank '%s' has more than one account named '%s'", e.Bank, e.Account)
	}
	return fmt.Sprintf("more than one bank named '%s'", e.Bank)
}

// DanglingRefundError reports a refund whose original transaction is missing.
type DanglingRefundError struct {
	Transaction *Transaction
}

func (e *DanglingRefundError) Error() string {
	return fmt.Sprintf("refund %s references unknown transaction %s",
		e.Transaction.ID, e.Transaction.RefundedTransactionID)
}

// DuplicateIDError reports two transactions sharing an id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("more than one transaction with id %s", e.ID)
}

// ValidationErrors wraps multiple integrity errors
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d integrity errors found", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}
