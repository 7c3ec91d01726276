// Large Ledger Generator
//
// This tool generates a large maestro ledger for performance testing and profiling.
// Transactions are recorded through the ledger operations, so balances stay
// consistent and the result passes `maestro check`.
//
// Usage:
//
//	go run main.go ./perf                 # 100000 transactions as JSON documents
//	go run main.go ./perf 500000 sqlite   # Specify count and backend
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/robinvdvleuten/maestro/config"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/storage"
)

const (
	defaultCount = 100000
)

var (
	banks = map[string][]string{
		"Chase":          {"Checking", "Savings", "Sapphire"},
		"Bank of Rivers": {"Checking", "Joint", "Vacation Fund"},
		"Credit Union":   {"Share Savings", "Auto Loan"},
		"Brokerage":      {"Cash"},
		"Wallet":         {"Cash"},
	}

	bankOrder = []string{"Chase", "Bank of Rivers", "Credit Union", "Brokerage", "Wallet"}

	descriptions = []string{
		"Grocery shopping", "Fuel purchase", "Rent payment",
		"Salary deposit", "Utility bill", "Online purchase",
		"Restaurant dinner", "Coffee", "Monthly subscription",
		"Medical appointment", "Dividend payment", "Insurance premium",
		"Gift", "ATM withdrawal", "Transfer",
	}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: generate_large_ledger DIR [COUNT] [json|sqlite]")
		os.Exit(2)
	}

	cfg := config.Default()
	cfg.DataDir = os.Args[1]

	count := defaultCount
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			count = n
		}
	}
	if len(os.Args) > 3 {
		cfg.Backend = os.Args[3]
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := ledger.New()
	for _, bank := range bankOrder {
		if _, err := l.AddBank(bank); err != nil {
			panic(err)
		}
		for _, account := range banks[bank] {
			if _, err := l.AddAccount(bank, account, randAmount(0, 5000)); err != nil {
				panic(err)
			}
		}
	}

	added, edited, refunded := 0, 0, 0
	var ids []string

	for added+edited+refunded < count {
		// Mix different operations
		switch rand.Intn(10) {
		case 0: // 10% - Edit an earlier transaction
			if len(ids) == 0 {
				continue
			}
			id := ids[rand.Intn(len(ids))]
			if _, err := l.EditTransaction(id, randKind(), randAmount(1, 500), randDescription()); err != nil {
				panic(err)
			}
			edited++

		case 1: // 10% - Refund part of an earlier transaction
			if len(ids) == 0 {
				continue
			}
			delta, err := l.RefundTransaction(ids[rand.Intn(len(ids))], randAmount(1, 100))
			if err != nil {
				panic(err)
			}
			ids = append(ids, delta.Refund.ID)
			refunded++

		default: // 80% - New deposit or withdrawal
			bank := bankOrder[rand.Intn(len(bankOrder))]
			account := banks[bank][rand.Intn(len(banks[bank]))]
			delta, err := l.AddTransaction(bank, account, randKind(), randAmount(1, 2000), randDescription())
			if err != nil {
				panic(err)
			}
			ids = append(ids, delta.Transaction.ID)
			added++
		}
	}

	backend, err := storage.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer backend.Close()

	if err := storage.Save(context.Background(), backend, l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Generated %d transactions (%d added, %d edits, %d refunds) in %s\n",
		l.Len(), added, edited, refunded, cfg.DataDir)
}

// Helper functions

func randAmount(min, max float64) string {
	amount := min + rand.Float64()*(max-min)
	return fmt.Sprintf("%.2f", amount)
}

func randKind() ledger.Kind {
	if rand.Intn(3) == 0 {
		return ledger.Deposit
	}
	return ledger.Withdrawal
}

func randDescription() string {
	return descriptions[rand.Intn(len(descriptions))]
}
