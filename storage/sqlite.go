package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteFile is the database file name inside the data directory.
const SQLiteFile = "maestro.db"

// SQLite stores the documents as rows in a SQLite database. Position columns
// keep the order of banks, accounts and transactions.
type SQLite struct {
	db   *gorm.DB
	path string
}

type bankModel struct {
	ID       uint   `gorm:"primaryKey"`
	Position int    `gorm:"not null"`
	Name     string `gorm:"not null"`
}

func (bankModel) TableName() string { return "banks" }

type accountModel struct {
	ID       uint            `gorm:"primaryKey"`
	BankID   uint            `gorm:"index;not null"`
	Position int             `gorm:"not null"`
	Name     string          `gorm:"not null"`
	Balance  decimal.Decimal `gorm:"type:text;not null"`
}

func (accountModel) TableName() string { return "accounts" }

type transactionModel struct {
	ID                    uint            `gorm:"primaryKey"`
	Position              int             `gorm:"index;not null"`
	TransactionID         string          `gorm:"index;not null"`
	Bank                  string          `gorm:"not null"`
	Account               string          `gorm:"not null"`
	Type                  string          `gorm:"not null"`
	Amount                decimal.Decimal `gorm:"type:text;not null"`
	Description           string
	Date                  time.Time
	RefundedTransactionID string `gorm:"index"`
}

func (transactionModel) TableName() string { return "transactions" }

// OpenSQLite opens (creating if needed) the database at path and migrates its schema.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&bankModel{}, &accountModel{}, &transactionModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// LoadSetup implements Backend.
func (s *SQLite) LoadSetup(ctx context.Context) (ledger.Setup, error) {
	db := s.db.WithContext(ctx)

	var banks []bankModel
	if err := db.Order("position").Find(&banks).Error; err != nil {
		return ledger.Setup{}, fmt.Errorf("failed to load banks: %w", err)
	}
	var accounts []accountModel
	if err := db.Order("bank_id, position").Find(&accounts).Error; err != nil {
		return ledger.Setup{}, fmt.Errorf("failed to load accounts: %w", err)
	}

	setup := ledger.Setup{Banks: make([]*ledger.Bank, 0, len(banks))}
	byID := make(map[uint]*ledger.Bank, len(banks))
	for _, bm := range banks {
		b := &ledger.Bank{Name: bm.Name, Accounts: make([]*ledger.Account, 0)}
		byID[bm.ID] = b
		setup.Banks = append(setup.Banks, b)
	}
	for _, am := range accounts {
		b, ok := byID[am.BankID]
		if !ok {
			continue
		}
		b.Accounts = append(b.Accounts, &ledger.Account{Name: am.Name, Balance: am.Balance})
	}
	return setup, nil
}

// SaveSetup implements Backend. Banks and accounts are replaced in one
// database transaction.
func (s *SQLite) SaveSetup(ctx context.Context, setup ledger.Setup) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&accountModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear accounts: %w", err)
		}
		if err := all.Delete(&bankModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear banks: %w", err)
		}

		for i, b := range setup.Banks {
			bm := bankModel{Position: i, Name: b.Name}
			if err := tx.Create(&bm).Error; err != nil {
				return fmt.Errorf("failed to save bank %q: %w", b.Name, err)
			}
			if len(b.Accounts) == 0 {
				continue
			}

			accounts := make([]accountModel, 0, len(b.Accounts))
			for j, a := range b.Accounts {
				accounts = append(accounts, accountModel{BankID: bm.ID, Position: j, Name: a.Name, Balance: a.Balance})
			}
			if err := tx.Create(&accounts).Error; err != nil {
				return fmt.Errorf("failed to save accounts of %q: %w", b.Name, err)
			}
		}
		return nil
	})
}

// LoadTransactions implements Backend.
func (s *SQLite) LoadTransactions(ctx context.Context) ([]*ledger.Transaction, error) {
	var rows []transactionModel
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	txns := make([]*ledger.Transaction, 0, len(rows))
	for _, r := range rows {
		kind, err := ledger.ParseKind(r.Type)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", r.TransactionID, err)
		}
		txns = append(txns, &ledger.Transaction{
			ID:                    r.TransactionID,
			Bank:                  r.Bank,
			Account:               r.Account,
			Kind:                  kind,
			Amount:                r.Amount,
			Description:           r.Description,
			Date:                  r.Date,
			RefundedTransactionID: r.RefundedTransactionID,
		})
	}
	return txns, nil
}

// SaveTransactions implements Backend. The log is replaced in one database
// transaction.
func (s *SQLite) SaveTransactions(ctx context.Context, txns []*ledger.Transaction) error {
	rows := make([]transactionModel, 0, len(txns))
	for i, tx := range txns {
		kind, err := tx.Kind.MarshalText()
		if err != nil {
			return fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		rows = append(rows, transactionModel{
			Position:              i,
			TransactionID:         tx.ID,
			Bank:                  tx.Bank,
			Account:               tx.Account,
			Type:                  string(kind),
			Amount:                tx.Amount,
			Description:           tx.Description,
			Date:                  tx.Date,
			RefundedTransactionID: tx.RefundedTransactionID,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&transactionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
		return nil
	})
}

// Paths implements Backend.
func (s *SQLite) Paths() []string {
	return []string{s.path}
}

// Close implements Backend.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
