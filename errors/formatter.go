// Package errors renders ledger integrity errors for the different consumers
// of the check command. It keeps presentation out of the ledger package,
// which only defines the error types.
//
// Two formatters are provided:
//   - TextFormatter: one message per error, followed by the offending
//     transaction when there is one
//   - JSONFormatter: structured output for scripts and other tools
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/robinvdvleuten/maestro/ledger"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// Message returns the error text with its first letter capitalized, which is
// how errors are shown to the user.
func Message(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

var (
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// TextFormatter formats errors for terminal output.
type TextFormatter struct {
	record func(tx *ledger.Transaction) string
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithRecord sets how the offending transaction is described below an error.
func WithRecord(record func(tx *ledger.Transaction) string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.record = record
	}
}

// NewTextFormatter creates a new text formatter. Without WithRecord the
// offending transaction is shown by id only.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{
		record: func(tx *ledger.Transaction) string { return tx.ID },
	}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error with the transaction it concerns, if any.
func (tf *TextFormatter) Format(err error) string {
	var buf bytes.Buffer
	buf.WriteString(messageStyle.Render(Message(err)))
	buf.WriteByte('\n')

	if tx := transactionOf(err); tx != nil {
		line := tf.record(tx)
		if tx.IsRefund() {
			line += "  (refund of " + tx.RefundedTransactionID + ")"
		}
		buf.WriteString("   ")
		buf.WriteString(contextStyle.Render(line))
		buf.WriteByte('\n')
	}

	return buf.String()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	rendered := make([]string, 0, len(errs))
	for _, err := range errs {
		rendered = append(rendered, tf.Format(err))
	}
	return strings.Join(rendered, "\n")
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]interface{}),
	}

	switch e := err.(type) {
	case *ledger.DuplicateNameError:
		errJSON.Details["bank"] = e.Bank
		if e.Account != "" {
			errJSON.Details["account"] = e.Account
		}
	case *ledger.DuplicateIDError:
		errJSON.Details["transaction_id"] = e.ID
	}

	if tx := transactionOf(err); tx != nil {
		errJSON.Details["transaction_id"] = tx.ID
		errJSON.Details["bank"] = tx.Bank
		errJSON.Details["account"] = tx.Account
		if tx.IsRefund() {
			errJSON.Details["refunded_transaction_id"] = tx.RefundedTransactionID
		}
	}

	return errJSON
}

// transactionOf returns the transaction an integrity error concerns, or nil.
func transactionOf(err error) *ledger.Transaction {
	switch e := err.(type) {
	case *ledger.OrphanedTransactionError:
		return e.Transaction
	case *ledger.DanglingRefundError:
		return e.Transaction
	}
	return nil
}
