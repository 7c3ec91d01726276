package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestDeltaStrings(t *testing.T) {
	l := newTestLedger(t)

	add, err := l.AddTransaction("Test Bank", "Checking", Deposit, "50", "Salary")
	assert.NoError(t, err)
	assert.Equal(t, "Add Deposit 50 to Test Bank - Checking", add.String())

	edit, err := l.EditTransaction(add.Transaction.ID, Withdrawal, "20", "Rent")
	assert.NoError(t, err)
	assert.Equal(t, "-70", edit.Net().String())
	assert.Contains(t, edit.String(), `Before: Deposit 50 "Salary"`)
	assert.Contains(t, edit.String(), `After: Withdrawal 20 "Rent"`)
	assert.NotContains(t, edit.String(), "Balance untouched")

	refund, err := l.RefundTransaction(add.Transaction.ID, "99")
	assert.NoError(t, err)
	assert.Equal(t, "Refund 20 of transaction tx1 as Deposit (requested 99, clamped)", refund.String())
}

func TestEditDeltaString_Orphaned(t *testing.T) {
	l := newTestLedger(t)
	add, err := l.AddTransaction("Test Bank", "Checking", Deposit, "50", "")
	assert.NoError(t, err)
	_, err = l.DeleteAccount("Test Bank", "Checking")
	assert.NoError(t, err)

	// Deleting the account purged the transaction, so restore an orphan by hand.
	orphan := *add.Transaction
	l = Restore(l.Setup(), []*Transaction{&orphan}, WithClock(func() time.Time { return testTime }))

	edit, err := l.EditTransaction(orphan.ID, Deposit, "10", "")
	assert.NoError(t, err)
	assert.False(t, edit.Adjusted())
	assert.Contains(t, edit.String(), "Balance untouched: account 'Test Bank - Checking' not found")
}
