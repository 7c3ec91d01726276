package web

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/storage"
	"github.com/shopspring/decimal"
)

// newTestServer stores l in a temp dir and returns a loaded server over it.
func newTestServer(t *testing.T, l *ledger.Ledger) (*Server, *http.ServeMux) {
	t.Helper()
	backend := storage.NewJSON(t.TempDir())
	assert.NoError(t, storage.Save(context.Background(), backend, l))

	server := New(8080, backend)
	assert.NoError(t, server.reloadLedger(context.Background()))
	return server, server.setupRouter()
}

func testLedger() *ledger.Ledger {
	n := 0
	l := ledger.New(ledger.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("tx%d", n)
	}))
	_, _ = l.AddBank("Test Bank")
	_, _ = l.AddAccount("Test Bank", "Checking", "1000")
	_, _ = l.AddAccount("Test Bank", "Savings", "0")
	_, _ = l.AddBank("Empty Bank")
	_, _ = l.AddTransaction("Test Bank", "Checking", ledger.Deposit, "234.5", "Salary")
	_, _ = l.AddTransaction("Test Bank", "Savings", ledger.Withdrawal, "20", "Fee")
	return l
}

func get(t *testing.T, mux *http.ServeMux, target string, v any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK && v != nil {
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(v))
	}
	return rec
}

func TestAPIBanks(t *testing.T) {
	_, mux := newTestServer(t, testLedger())

	var resp BanksResponse
	rec := get(t, mux, "/api/banks", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []BankInfo{
		{Name: "Test Bank", Accounts: []string{"Checking", "Savings"}},
		{Name: "Empty Bank", Accounts: []string{}},
	}, resp.Banks)
}

func TestAPIBalances(t *testing.T) {
	server, mux := newTestServer(t, testLedger())
	server.Currency = "USD"

	var resp BalancesResponse
	rec := get(t, mux, "/api/balances", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, 2, len(resp.Banks))

	bank := resp.Banks[0]
	assert.Equal(t, "Test Bank", bank.Name)
	assert.True(t, bank.Total.Equal(decimal.RequireFromString("1214.5")))
	assert.Equal(t, "$1,214.50", bank.Display)
	assert.Equal(t, "$1,234.50", bank.Accounts[0].Display)
	assert.Equal(t, "-$20.00", bank.Accounts[1].Display)

	assert.Equal(t, "$0.00", resp.Banks[1].Display)
	assert.Equal(t, 0, len(resp.Banks[1].Accounts))
}

func TestAPITransactions(t *testing.T) {
	_, mux := newTestServer(t, testLedger())

	tests := []struct {
		name   string
		target string
		ids    []string
	}{
		{name: "all", target: "/api/transactions", ids: []string{"tx1", "tx2"}},
		{name: "by bank", target: "/api/transactions?bank=Test+Bank", ids: []string{"tx1", "tx2"}},
		{name: "by account", target: "/api/transactions?bank=Test+Bank&account=Savings", ids: []string{"tx2"}},
		{name: "unknown bank", target: "/api/transactions?bank=Nope", ids: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp TransactionsResponse
			rec := get(t, mux, tt.target, &resp)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, len(tt.ids), resp.Count)

			ids := []string{}
			for _, tx := range resp.Transactions {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}

	t.Run("account without bank", func(t *testing.T) {
		rec := get(t, mux, "/api/transactions?account=Savings", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "account filter requires bank")
	})

	t.Run("fields", func(t *testing.T) {
		var resp map[string][]map[string]any
		get(t, mux, "/api/transactions?bank=Test+Bank&account=Savings", &resp)
		tx := resp["transactions"][0]
		assert.Equal(t, "withdrawal", tx["type"])
		assert.Equal(t, "Fee", tx["description"])
		_, hasRefund := tx["refunded_transaction_id"]
		assert.False(t, hasRefund)
	})
}

func TestAPIMethodNotAllowed(t *testing.T) {
	_, mux := newTestServer(t, testLedger())

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAPICheck(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		_, mux := newTestServer(t, testLedger())

		var resp CheckResponse
		get(t, mux, "/api/check", &resp)
		assert.True(t, resp.OK)
		assert.Equal(t, 0, len(resp.Errors))
	})

	t.Run("orphaned transaction", func(t *testing.T) {
		setup := ledger.Setup{Banks: []*ledger.Bank{{Name: "Test Bank"}}}
		txns := []*ledger.Transaction{{
			ID: "tx1", Bank: "Test Bank", Account: "Gone", Kind: ledger.Deposit,
			Amount: decimal.NewFromInt(5), Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		}}
		_, mux := newTestServer(t, ledger.Restore(setup, txns))

		var resp CheckResponse
		get(t, mux, "/api/check", &resp)
		assert.False(t, resp.OK)
		assert.Equal(t, 1, len(resp.Errors))
		assert.Equal(t, "*ledger.OrphanedTransactionError", resp.Errors[0].Type)
		assert.Equal(t, "tx1", resp.Errors[0].Details["transaction_id"])
	})
}

func TestReloadAndEvents(t *testing.T) {
	server, mux := newTestServer(t, testLedger())
	ts := httptest.NewServer(mux)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	assert.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := bufio.NewReader(resp.Body)
	line, err := events.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: connected\n", line)

	// A change on disk is picked up by the next reload.
	l := testLedger()
	_, _ = l.AddBank("New Bank")
	assert.NoError(t, storage.Save(ctx, server.backend, l))
	server.handleChange(ctx)

	_, _ = events.ReadString('\n') // blank line ending the previous event
	line, err = events.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: reload\n", line)

	var banks BanksResponse
	get(t, mux, "/api/banks", &banks)
	assert.Equal(t, 3, len(banks.Banks))
}
