package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/shopspring/decimal"
)

// Document file names inside the data directory.
const (
	SetupFile        = "setup.json"
	TransactionsFile = "transactions.json"
)

// JSON stores each document as an indented JSON file in a directory.
type JSON struct {
	dir string
}

// NewJSON returns a backend reading and writing files in dir.
func NewJSON(dir string) *JSON {
	return &JSON{dir: dir}
}

type setupDocument struct {
	Banks []bankRecord `json:"banks"`
}

type bankRecord struct {
	Name     string          `json:"name"`
	Accounts []accountRecord `json:"accounts"`
}

type accountRecord struct {
	Name    string     `json:"name"`
	Balance jsonAmount `json:"balance"`
}

type transactionRecord struct {
	ID                    string      `json:"id"`
	Bank                  string      `json:"bank"`
	Account               string      `json:"account"`
	Type                  ledger.Kind `json:"type"`
	Amount                jsonAmount  `json:"amount"`
	Description           string      `json:"description"`
	Date                  jsonTime    `json:"date"`
	RefundedTransactionID string      `json:"refunded_transaction_id,omitempty"`
}

// jsonAmount is written as a bare JSON number and read from a number or a string.
type jsonAmount decimal.Decimal

func (a jsonAmount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *jsonAmount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = jsonAmount(d)
	return nil
}

// jsonTime is written as RFC 3339. Timestamps without a zone offset are read
// as local time.
type jsonTime time.Time

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t jsonTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

func (t *jsonTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*t = jsonTime(parsed)
		return nil
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = jsonTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// LoadSetup implements Backend.
func (j *JSON) LoadSetup(ctx context.Context) (ledger.Setup, error) {
	var doc setupDocument
	found, err := j.read(SetupFile, &doc)
	if err != nil || !found {
		return ledger.Setup{Banks: []*ledger.Bank{}}, err
	}

	setup := ledger.Setup{Banks: make([]*ledger.Bank, 0, len(doc.Banks))}
	for _, br := range doc.Banks {
		bank := &ledger.Bank{Name: br.Name, Accounts: make([]*ledger.Account, 0, len(br.Accounts))}
		for _, ar := range br.Accounts {
			bank.Accounts = append(bank.Accounts, &ledger.Account{
				Name:    ar.Name,
				Balance: decimal.Decimal(ar.Balance),
			})
		}
		setup.Banks = append(setup.Banks, bank)
	}
	return setup, nil
}

// SaveSetup implements Backend.
func (j *JSON) SaveSetup(ctx context.Context, setup ledger.Setup) error {
	doc := setupDocument{Banks: make([]bankRecord, 0, len(setup.Banks))}
	for _, b := range setup.Banks {
		br := bankRecord{Name: b.Name, Accounts: make([]accountRecord, 0, len(b.Accounts))}
		for _, a := range b.Accounts {
			br.Accounts = append(br.Accounts, accountRecord{Name: a.Name, Balance: jsonAmount(a.Balance)})
		}
		doc.Banks = append(doc.Banks, br)
	}
	return j.write(SetupFile, doc)
}

// LoadTransactions implements Backend.
func (j *JSON) LoadTransactions(ctx context.Context) ([]*ledger.Transaction, error) {
	var records []transactionRecord
	found, err := j.read(TransactionsFile, &records)
	if err != nil || !found {
		return []*ledger.Transaction{}, err
	}

	txns := make([]*ledger.Transaction, 0, len(records))
	for _, r := range records {
		txns = append(txns, &ledger.Transaction{
			ID:                    r.ID,
			Bank:                  r.Bank,
			Account:               r.Account,
			Kind:                  r.Type,
			Amount:                decimal.Decimal(r.Amount),
			Description:           r.Description,
			Date:                  time.Time(r.Date),
			RefundedTransactionID: r.RefundedTransactionID,
		})
	}
	return txns, nil
}

// SaveTransactions implements Backend.
func (j *JSON) SaveTransactions(ctx context.Context, txns []*ledger.Transaction) error {
	records := make([]transactionRecord, 0, len(txns))
	for _, tx := range txns {
		records = append(records, transactionRecord{
			ID:                    tx.ID,
			Bank:                  tx.Bank,
			Account:               tx.Account,
			Type:                  tx.Kind,
			Amount:                jsonAmount(tx.Amount),
			Description:           tx.Description,
			Date:                  jsonTime(tx.Date),
			RefundedTransactionID: tx.RefundedTransactionID,
		})
	}
	return j.write(TransactionsFile, records)
}

// Paths implements Backend.
func (j *JSON) Paths() []string {
	return []string{filepath.Join(j.dir, SetupFile), filepath.Join(j.dir, TransactionsFile)}
}

// Close implements Backend.
func (j *JSON) Close() error {
	return nil
}

// read decodes name into v. It reports false when the file does not exist.
func (j *JSON) read(name string, v any) (bool, error) {
	path := filepath.Join(j.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

// write truncates name and writes v as 4-space indented JSON.
func (j *JSON) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(j.dir, name), append(data, '\n'), 0o644)
}
