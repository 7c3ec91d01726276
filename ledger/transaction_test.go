package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "deposit", want: Deposit},
		{input: "Deposit", want: Deposit},
		{input: " WITHDRAWAL ", want: Withdrawal},
		{input: "transfer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindOpposite(t *testing.T) {
	assert.Equal(t, Withdrawal, Deposit.Opposite())
	assert.Equal(t, Deposit, Withdrawal.Opposite())
	assert.False(t, Kind(0).Valid())
	assert.Equal(t, "Unknown", Kind(0).String())
}

func TestTransactionJSON(t *testing.T) {
	tx := &Transaction{
		ID:          "abc",
		Bank:        "Test Bank",
		Account:     "Checking",
		Kind:        Withdrawal,
		Amount:      decimal.RequireFromString("12.5"),
		Description: "Lunch",
		Date:        time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(tx)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"type":"withdrawal"`)
	assert.NotContains(t, string(data), "refunded_transaction_id")

	tx.RefundedTransactionID = "orig"
	data, err = json.Marshal(tx)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"refunded_transaction_id":"orig"`)
}

func TestTransactionJSON_NumericAmount(t *testing.T) {
	raw := `{"id":"1","bank":"B","account":"A","type":"deposit","amount":50.25,"description":"","date":"2024-01-15T10:30:00Z"}`

	var tx Transaction
	assert.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, Deposit, tx.Kind)
	assert.Equal(t, "50.25", tx.Amount.String())

	bad := `{"id":"1","type":"transfer"}`
	assert.Error(t, json.Unmarshal([]byte(bad), &tx))
}

func TestReferences(t *testing.T) {
	tx := &Transaction{Bank: "B", Account: "A"}
	assert.True(t, tx.References("B", "A"))
	assert.False(t, tx.References("B", ""))
	assert.False(t, tx.References("B", "X"))
	assert.False(t, tx.References("C", "A"))
	assert.True(t, tx.InBank("B"))
	assert.False(t, tx.InBank("C"))

	unnamed := &Transaction{Bank: "B", Account: ""}
	assert.True(t, unnamed.References("B", ""))
	assert.False(t, unnamed.References("B", "A"))
}
