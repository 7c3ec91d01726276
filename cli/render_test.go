package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/output"
	"github.com/shopspring/decimal"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// plain strips terminal styling from rendered output.
func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTransactions(t *testing.T) {
	txns := []*ledger.Transaction{
		{ID: "tx1", Bank: "Test Bank", Account: "Checking", Kind: ledger.Withdrawal, Amount: decimal.NewFromInt(20), Description: "Groceries", Date: testTime},
		{ID: "tx2", Bank: "Test Bank", Account: "Checking", Kind: ledger.Deposit, Amount: decimal.NewFromInt(1500), Date: testTime, RefundedTransactionID: "tx1"},
	}

	var buf bytes.Buffer
	renderTransactions(&buf, output.NewStyles(&buf), txns, "USD")

	lines := strings.Split(plain(buf.String()), "\n")
	assert.Equal(t, "ID   Date                 Account               Type           Amount  Description", lines[0])
	assert.Equal(t, "tx1  2024-01-15T10:30:00  Test Bank - Checking  Withdrawal    -$20.00  Groceries", lines[1])
	assert.Equal(t, "tx2  2024-01-15T10:30:00  Test Bank - Checking  Deposit     $1,500.00  Refund for transaction tx1", lines[2])
	assert.Contains(t, buf.String(), "2 transaction(s)")
}

func TestRenderTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderTransactions(&buf, output.NewStyles(&buf), nil, "USD")
	assert.Equal(t, "No transactions available.\n", buf.String())
}

func TestRenderBalances(t *testing.T) {
	l := ledger.New()
	_, _ = l.AddBank("Test Bank")
	_, _ = l.AddAccount("Test Bank", "Checking", "1234.5")
	_, _ = l.AddAccount("Test Bank", "Credit", "-20")
	_, _ = l.AddBank("Empty Bank")

	var buf bytes.Buffer
	renderBalances(&buf, output.NewStyles(&buf), l.Balances(), "USD")

	out := plain(buf.String())
	assert.Contains(t, out, "Account Balances:")
	assert.Contains(t, out, "Bank: Test Bank (Total Balance: $1,214.50)")
	assert.Contains(t, out, "  - Checking  $1,234.50\n")
	assert.Contains(t, out, "  - Credit      -$20.00\n")
	assert.Contains(t, out, "Bank: Empty Bank (Total Balance: $0.00)\n  No accounts available.")
	assert.True(t, strings.HasSuffix(out, strings.Repeat("=", headerWidth)+"\n"))
}

func TestRenderBalancesEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderBalances(&buf, output.NewStyles(&buf), nil, "USD")
	assert.Equal(t, "No banks or accounts available.\n", buf.String())
}

func TestChoiceLabels(t *testing.T) {
	l := ledger.New()
	_, _ = l.AddBank("Test Bank")
	_, _ = l.AddAccount("Test Bank", "Checking", "100")
	_, _ = l.AddAccount("Test Bank", "Savings", "0.5")
	bank, _ := l.Bank("Test Bank")

	assert.Equal(t, []Choice{{Label: "Test Bank (Total: $100.50)", Value: "Test Bank"}}, bankChoices(l.Banks(), "USD"))
	assert.Equal(t, []Choice{
		{Label: "Checking (Balance: $100.00)", Value: "Checking"},
		{Label: "Savings (Balance: $0.50)", Value: "Savings"},
	}, accountChoices(bank, "USD"))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "  ab", padLeft("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
	assert.Equal(t, "日本 ", padRight("日本", 5))
}
