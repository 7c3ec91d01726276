package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "50", want: "50"},
		{name: "decimal", input: "12.34", want: "12.34"},
		{name: "surrounding spaces", input: "  7.5 ", want: "7.5"},
		{name: "negative", input: "-3", want: "-3"},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
		{name: "currency symbol", input: "$5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidAmount))

				var amountErr *AmountError
				assert.True(t, errors.As(err, &amountErr))
				assert.Equal(t, tt.input, amountErr.Input)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTransactionAmount(t *testing.T) {
	_, err := ParseTransactionAmount("0")
	assert.IsError(t, err, ErrInvalidAmount)

	_, err = ParseTransactionAmount("-1")
	assert.IsError(t, err, ErrInvalidAmount)

	d, err := ParseTransactionAmount("0.01")
	assert.NoError(t, err)
	assert.Equal(t, "0.01", d.String())
}

func TestParseEditAmount(t *testing.T) {
	plain := &Transaction{ID: "tx1"}
	refund := &Transaction{ID: "tx2", RefundedTransactionID: "tx1"}

	_, err := ParseEditAmount(plain, "0")
	assert.IsError(t, err, ErrInvalidAmount)

	d, err := ParseEditAmount(refund, "0")
	assert.NoError(t, err)
	assert.Equal(t, "0", d.String())

	d, err = ParseEditAmount(refund, "-2.50")
	assert.NoError(t, err)
	assert.Equal(t, "-2.5", d.String())

	_, err = ParseEditAmount(refund, "abc")
	assert.IsError(t, err, ErrInvalidAmount)
}
