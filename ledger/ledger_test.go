package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestNew(t *testing.T) {
	l := New()
	assert.Equal(t, 0, len(l.Banks()))
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, len(l.Setup().Banks))
}

func TestRestore(t *testing.T) {
	setup := Setup{Banks: []*Bank{
		{Name: "A", Accounts: []*Account{{Name: "Checking", Balance: decimal.NewFromInt(10)}}},
		nil,
		{Name: "B"},
	}}
	txns := []*Transaction{
		{ID: "1", Bank: "A", Account: "Checking", Kind: Deposit, Amount: decimal.NewFromInt(10)},
		nil,
	}

	l := Restore(setup, txns)

	assert.Equal(t, 2, len(l.Banks()))
	assert.Equal(t, 1, l.Len())

	b, ok := l.Bank("B")
	assert.True(t, ok)
	assert.True(t, b.Accounts != nil, "nil accounts should be normalized to an empty slice")
	assert.Equal(t, 0, len(b.Accounts))
}

func TestLookup(t *testing.T) {
	l := newTestLedger(t)

	t.Run("bank and account", func(t *testing.T) {
		b, a := l.Lookup("Test Bank", "Checking")
		assert.Equal(t, "Test Bank", b.Name)
		assert.Equal(t, "Checking", a.Name)
	})

	t.Run("missing account", func(t *testing.T) {
		b, a := l.Lookup("Test Bank", "Savings")
		assert.Equal(t, "Test Bank", b.Name)
		assert.Zero(t, a)
	})

	t.Run("missing bank", func(t *testing.T) {
		b, a := l.Lookup("Other Bank", "Checking")
		assert.Zero(t, b)
		assert.Zero(t, a)
	})
}

func TestTransactionByID(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.AddTransaction("Test Bank", "Checking", Deposit, "5", "")
	assert.NoError(t, err)

	tx, ok := l.Transaction("tx1")
	assert.True(t, ok)
	assert.Equal(t, "tx1", tx.ID)

	_, ok = l.Transaction("missing")
	assert.False(t, ok)
}

func TestDefaultIDs(t *testing.T) {
	l := New()
	_, _ = l.AddBank("Bank")
	_, _ = l.AddAccount("Bank", "Checking", "")

	a, err := l.AddTransaction("Bank", "Checking", Deposit, "1", "")
	assert.NoError(t, err)
	b, err := l.AddTransaction("Bank", "Checking", Deposit, "1", "")
	assert.NoError(t, err)

	assert.Equal(t, 32, len(a.Transaction.ID))
	assert.NotEqual(t, a.Transaction.ID, b.Transaction.ID)
	assert.False(t, a.Transaction.Date.IsZero())
}
