package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user-supplied text to a decimal amount.
// Surrounding whitespace is ignored. Empty or non-numeric text is rejected
// with an *AmountError.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, &AmountError{Input: text, Reason: "amount is required"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &AmountError{Input: text, Reason: "not a number"}
	}

	return d, nil
}

// ParseTransactionAmount parses the amount of a new or edited transaction,
// which must be strictly positive; the kind carries the direction.
func ParseTransactionAmount(text string) (decimal.Decimal, error) {
	d, err := ParseAmount(text)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, &AmountError{Input: text, Reason: "must be greater than zero"}
	}
	return d, nil
}

// ParseEditAmount parses the new amount for an edit of tx. Refund records keep
// the refund rules, so zero or negative amounts stay editable on them.
func ParseEditAmount(tx *Transaction, text string) (decimal.Decimal, error) {
	if tx.IsRefund() {
		return ParseAmount(text)
	}
	return ParseTransactionAmount(text)
}

// parseOptionalAmount parses text that may be left blank, returning fallback
// in that case.
func parseOptionalAmount(text string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(text) == "" {
		return fallback, nil
	}
	return ParseAmount(text)
}
