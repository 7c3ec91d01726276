package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

var testTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// newTestLedger returns a ledger with a fixed clock and sequential ids
// ("tx1", "tx2", ...) holding "Test Bank" / "Checking" at 100.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	n := 0
	l := New(
		WithClock(func() time.Time { return testTime }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("tx%d", n)
		}),
	)

	_, err := l.AddBank("Test Bank")
	assert.NoError(t, err)
	_, err = l.AddAccount("Test Bank", "Checking", "100")
	assert.NoError(t, err)

	return l
}

func balanceOf(t *testing.T, l *Ledger, bank, account string) string {
	t.Helper()
	_, acc := l.Lookup(bank, account)
	assert.NotZero(t, acc, "account %s - %s should exist", bank, account)
	return acc.Balance.String()
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := ParseAmount(s)
	assert.NoError(t, err)
	return d
}
