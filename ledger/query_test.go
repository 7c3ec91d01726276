package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestBalances(t *testing.T) {
	l := newPopulatedLedger(t)
	_, err := l.AddBank("Empty Bank")
	assert.NoError(t, err)

	balances := l.Balances()
	assert.Equal(t, 3, len(balances))

	assert.Equal(t, "Test Bank", balances[0].Name)
	assert.Equal(t, "1103", balances[0].Total.String())
	assert.Equal(t, 2, len(balances[0].Accounts))
	assert.Equal(t, "Checking", balances[0].Accounts[0].Name)
	assert.Equal(t, "102", balances[0].Accounts[0].Balance.String())
	assert.Equal(t, "1001", balances[0].Accounts[1].Balance.String())

	assert.Equal(t, "Other Bank", balances[1].Name)
	assert.Equal(t, "6", balances[1].Total.String())

	assert.Equal(t, "Empty Bank", balances[2].Name)
	assert.Equal(t, "0", balances[2].Total.String())
	assert.Equal(t, 0, len(balances[2].Accounts))

	for _, bb := range balances {
		sum := decimal.Zero
		for _, ab := range bb.Accounts {
			sum = sum.Add(ab.Balance)
		}
		assert.True(t, sum.Equal(bb.Total), "bank total equals sum of accounts for %s", bb.Name)
	}
}

func TestTransactionsFilter(t *testing.T) {
	l := newPopulatedLedger(t)

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{name: "no filter", filter: Filter{}, wantIDs: []string{"tx1", "tx2", "tx3", "tx4"}},
		{name: "by bank", filter: Filter{Bank: "Test Bank"}, wantIDs: []string{"tx1", "tx2", "tx4"}},
		{name: "by bank and account", filter: Filter{Bank: "Test Bank", Account: "Checking"}, wantIDs: []string{"tx1", "tx4"}},
		{name: "account without bank is ignored", filter: Filter{Account: "Savings"}, wantIDs: []string{"tx1", "tx2", "tx3", "tx4"}},
		{name: "no match", filter: Filter{Bank: "Nope"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Transactions(tt.filter)
			ids := make([]string, 0, len(got))
			for _, tx := range got {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestTransactionBanksAndAccounts(t *testing.T) {
	l := newPopulatedLedger(t)

	assert.Equal(t, []string{"Test Bank", "Other Bank"}, l.TransactionBanks())
	assert.Equal(t, []string{"Checking", "Savings"}, l.TransactionAccounts("Test Bank"))
	assert.Equal(t, []string{"Checking"}, l.TransactionAccounts("Other Bank"))
	assert.Equal(t, 0, len(l.TransactionAccounts("Nope")))
}
