package output

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	assert.NotZero(t, styles)
	assert.NotZero(t, styles.Output())
}

func TestStylesKeepText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	tests := []struct {
		name   string
		styled string
		want   string
	}{
		{name: "success", styled: styles.Success("saved"), want: "saved"},
		{name: "error", styled: styles.Error("failed"), want: "failed"},
		{name: "bank", styled: styles.Bank("Test Bank"), want: "Test Bank"},
		{name: "account", styled: styles.Account("Checking"), want: "Checking"},
		{name: "positive amount", styled: styles.Amount("$10.00", decimal.NewFromInt(10)), want: "$10.00"},
		{name: "negative amount", styled: styles.Amount("-$10.00", decimal.NewFromInt(-10)), want: "-$10.00"},
		{name: "id", styled: styles.ID("abc123"), want: "abc123"},
		{name: "keyword", styled: styles.Keyword("Total"), want: "Total"},
		{name: "dim", styled: styles.Dim("secondary"), want: "secondary"},
		{name: "warning", styled: styles.Warning("careful"), want: "careful"},
		{name: "fast timing", styled: styles.Timing("5ms", false), want: "5ms"},
		{name: "slow timing", styled: styles.Timing("2.00s", true), want: "2.00s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.styled, tt.want)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{amount: "0", currency: "USD", want: "$0.00"},
		{amount: "150", currency: "USD", want: "$150.00"},
		{amount: "1234.5", currency: "USD", want: "$1,234.50"},
		{amount: "-20", currency: "USD", want: "-$20.00"},
		{amount: "10.005", currency: "USD", want: "$10.01"},
		{amount: "12.5", currency: "ABC", want: "12.50 ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}
