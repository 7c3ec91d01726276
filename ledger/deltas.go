package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Delta Architecture
//
// Transaction operations first validate their input against a read-only view of the
// ledger and describe the mutation as a delta. Only a complete delta is applied, so
// a rejected operation never leaves a half-updated balance or log behind. Deltas are
// also what the session reports back to the user after an operation.

// Entry is the editable part of a transaction.
type Entry struct {
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// String returns a human-readable representation of the entry
func (e Entry) String() string {
	return fmt.Sprintf("%s %s %q", e.Kind, e.Amount.String(), e.Description)
}

// AddDelta represents appending a new transaction and applying it to its account.
type AddDelta struct {
	Transaction *Transaction // Transaction to append
	Account     *Account     // Account the transaction is applied to
}

// String returns a human-readable representation of the add delta
func (d *AddDelta) String() string {
	return fmt.Sprintf("Add %s %s to %s - %s",
		d.Transaction.Kind, d.Transaction.Amount.String(), d.Transaction.Bank, d.Transaction.Account)
}

// EditDelta represents overwriting a transaction in place. Account is nil when the
// owning account no longer exists; the fields are still overwritten but no balance
// is adjusted.
type EditDelta struct {
	Transaction *Transaction
	Account     *Account
	Before      Entry
	After       Entry
}

// Adjusted reports whether the edit moves an account balance.
func (d *EditDelta) Adjusted() bool {
	return d.Account != nil
}

// Net returns the change the edit makes to the owning account balance.
func (d *EditDelta) Net() decimal.Decimal {
	if d.Account == nil {
		return decimal.Zero
	}
	return SignedAmount(d.After.Kind, d.After.Amount).Sub(SignedAmount(d.Before.Kind, d.Before.Amount))
}

// String returns a human-readable representation of the edit delta
func (d *EditDelta) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Edit transaction %s:\n", d.Transaction.ID))
	sb.WriteString(fmt.Sprintf("  Before: %s\n", d.Before))
	sb.WriteString(fmt.Sprintf("  After: %s\n", d.After))
	if !d.Adjusted() {
		sb.WriteString(fmt.Sprintf("  Balance untouched: account '%s - %s' not found\n",
			d.Transaction.Bank, d.Transaction.Account))
	}
	return sb.String()
}

// RefundDelta represents appending a refund of an existing transaction.
type RefundDelta struct {
	Original  *Transaction
	Refund    *Transaction
	Account   *Account        // nil when the original's account no longer exists
	Requested decimal.Decimal // Amount asked for before clamping
	Clamped   bool            // Requested exceeded the original amount
}

// String returns a human-readable representation of the refund delta
func (d *RefundDelta) String() string {
	s := fmt.Sprintf("Refund %s of transaction %s as %s",
		d.Refund.Amount.String(), d.Original.ID, d.Refund.Kind)
	if d.Clamped {
		s += fmt.Sprintf(" (requested %s, clamped)", d.Requested.String())
	}
	return s
}
