package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errfmt "github.com/robinvdvleuten/maestro/errors"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/telemetry"
)

// Setup runs the initial setup wizard: banks are entered one by one, each
// followed by its accounts and their starting balances. A blank name finishes
// the current level. Rejected entries are reported and skipped. Whatever was
// entered is saved when the wizard finishes or is cancelled.
func (s *Session) Setup(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, "setup wizard")
	defer timer.End()

	_, _ = fmt.Fprintln(s.out, "Welcome to Money Maestro setup!")

	err := s.setupBanks(ctx)
	if err != nil && !errors.Is(err, ErrCancelled) {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	banks := s.ledger.Banks()
	accounts := 0
	for _, b := range banks {
		accounts += len(b.Accounts)
	}
	s.logger.Debug("setup complete", "banks", len(banks), "accounts", accounts)
	printSuccess(s.out, fmt.Sprintf("Setup complete! %d bank(s), %d account(s).", len(banks), accounts))
	return nil
}

// Reset replaces the ledger with an empty one and runs the setup wizard.
func (s *Session) Reset(ctx context.Context) error {
	s.ledger = ledger.New(s.ledgerOpts...)
	return s.Setup(ctx)
}

func (s *Session) setupBanks(ctx context.Context) error {
	for {
		name, err := s.prompt.Input(ctx, "Enter bank name (or leave blank to finish):", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			return nil
		}

		bank, err := s.ledger.AddBank(name)
		if err != nil {
			printError(s.out, errfmt.Message(err))
			continue
		}
		if err := s.setupAccounts(ctx, bank); err != nil {
			return err
		}
	}
}

func (s *Session) setupAccounts(ctx context.Context, bank *ledger.Bank) error {
	for {
		name, err := s.prompt.Input(ctx, fmt.Sprintf("Enter account name for '%s' (or leave blank to finish):", bank.Name), "")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil
		}

		balance, err := s.prompt.Input(ctx, fmt.Sprintf("Enter initial balance for account '%s' (default 0):", name), "")
		if err != nil {
			return err
		}
		if _, err := s.ledger.AddAccount(bank.Name, name, balance); err != nil {
			printError(s.out, errfmt.Message(err))
		}
	}
}
