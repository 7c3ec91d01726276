package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	errfmt "github.com/robinvdvleuten/maestro/errors"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/logging"
	"github.com/robinvdvleuten/maestro/output"
	"github.com/robinvdvleuten/maestro/storage"
	"github.com/robinvdvleuten/maestro/telemetry"
)

// Menu entries.
const (
	menuFinancial  = "Financial Operations"
	menuManagement = "Bank & Account Management"
	menuExit       = "Exit"

	menuAddTransaction    = "Add Transaction"
	menuEditTransaction   = "Edit Transaction"
	menuRefundTransaction = "Refund Transaction"
	menuViewTransactions  = "View Transactions"
	menuViewBalance       = "View Balance"

	menuAddBank       = "Add Bank"
	menuRenameBank    = "Rename Bank"
	menuDeleteBank    = "Delete Bank"
	menuAddAccount    = "Add Account"
	menuRenameAccount = "Rename Account"
	menuDeleteAccount = "Delete Account"

	menuBack = "Back to Main Menu"

	filterAll     = "All"
	filterBank    = "Filter by Bank"
	filterAccount = "Filter by Account"
)

// saveError marks a persistence failure. It ends the session, unlike
// validation failures which are reported and then return to the menu.
type saveError struct {
	err error
}

func (e *saveError) Error() string { return e.err.Error() }
func (e *saveError) Unwrap() error { return e.err }

// Session is the interactive menu loop over a ledger. Every mutating action
// saves both documents before returning to the menu.
type Session struct {
	ledger     *ledger.Ledger
	ledgerOpts []ledger.Option
	backend    storage.Backend
	prompt     Prompter
	out        io.Writer
	styles     *output.Styles
	currency   string
	logger     *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCurrency sets the ISO currency used to display amounts.
func WithCurrency(code string) SessionOption {
	return func(s *Session) {
		s.currency = code
	}
}

// WithLogger sets the logger for session events.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLedgerOptions sets the options used when the setup wizard starts a new ledger.
func WithLedgerOptions(opts ...ledger.Option) SessionOption {
	return func(s *Session) {
		s.ledgerOpts = opts
	}
}

// NewSession creates a session over l that persists to backend.
func NewSession(l *ledger.Ledger, backend storage.Backend, prompt Prompter, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		ledger:   l,
		backend:  backend,
		prompt:   prompt,
		out:      out,
		styles:   output.NewStyles(out),
		currency: "USD",
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger returns the ledger the session operates on.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Run shows the header, runs the setup wizard when there are no banks, and
// then loops over the main menu until the user exits. It returns an error only
// when the documents could not be saved or the prompt failed.
func (s *Session) Run(ctx context.Context) error {
	printHeader(s.out)

	if len(s.ledger.Banks()) == 0 {
		if err := s.Setup(ctx); err != nil {
			return err
		}
	}

	for {
		choice, err := s.menu(ctx, "Main Menu", menuFinancial, menuManagement, menuExit)
		if errors.Is(err, ErrCancelled) {
			choice = menuExit
		} else if err != nil {
			return err
		}

		switch choice {
		case menuFinancial:
			err = s.financialOperations(ctx)
		case menuManagement:
			err = s.bankAccountManagement(ctx)
		case menuExit:
			_, _ = fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) financialOperations(ctx context.Context) error {
	actions := map[string]func(context.Context) error{
		menuAddTransaction:    s.addTransaction,
		menuEditTransaction:   s.editTransaction,
		menuRefundTransaction: s.refundTransaction,
		menuViewTransactions:  s.viewTransactions,
		menuViewBalance:       s.viewBalance,
	}
	return s.submenu(ctx, "Financial Operations:", actions,
		menuAddTransaction, menuEditTransaction, menuRefundTransaction,
		menuViewTransactions, menuViewBalance, menuBack)
}

func (s *Session) bankAccountManagement(ctx context.Context) error {
	actions := map[string]func(context.Context) error{
		menuAddBank:       s.addBank,
		menuRenameBank:    s.renameBank,
		menuDeleteBank:    s.deleteBank,
		menuAddAccount:    s.addAccount,
		menuRenameAccount: s.renameAccount,
		menuDeleteAccount: s.deleteAccount,
	}
	return s.submenu(ctx, "Bank & Account Management:", actions,
		menuAddBank, menuRenameBank, menuDeleteBank,
		menuAddAccount, menuRenameAccount, menuDeleteAccount, menuBack)
}

// submenu loops over entries until the user picks menuBack or cancels.
func (s *Session) submenu(ctx context.Context, title string, actions map[string]func(context.Context) error, entries ...string) error {
	for {
		choice, err := s.menu(ctx, title, entries...)
		if errors.Is(err, ErrCancelled) || choice == menuBack {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.perform(ctx, choice, actions[choice]); err != nil {
			return err
		}
	}
}

func (s *Session) menu(ctx context.Context, title string, entries ...string) (string, error) {
	return s.prompt.Select(ctx, title, nameChoices(entries), "")
}

// perform runs one menu action. Cancellation and validation failures are
// reported and swallowed; save and prompt failures end the session.
func (s *Session) perform(ctx context.Context, name string, action func(context.Context) error) error {
	timer := telemetry.StartTimer(ctx, name)
	defer timer.End()

	err := action(ctx)

	var se *saveError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCancelled):
		printInfof(s.out, "Cancelled, nothing was changed.")
		return nil
	case errors.As(err, &se):
		printError(s.out, "Failed to save: "+se.err.Error())
		return se
	case isUserError(err):
		s.logger.Debug("action rejected", "action", name, "error", err)
		printError(s.out, errfmt.Message(err))
		return nil
	default:
		return err
	}
}

// isUserError reports whether err is a rejection the user can correct.
func isUserError(err error) bool {
	for _, target := range []error{
		ledger.ErrInvalidAmount, ledger.ErrEmptyName,
		ledger.ErrBankExists, ledger.ErrAccountExists,
		ledger.ErrBankNotFound, ledger.ErrAccountNotFound, ledger.ErrTransactionNotFound,
		ledger.ErrNoBanks, ledger.ErrNoAccounts, ledger.ErrNoTransactions,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Session) save(ctx context.Context) error {
	if err := storage.Save(ctx, s.backend, s.ledger); err != nil {
		s.logger.Error("failed to save ledger", "error", err)
		return &saveError{err: err}
	}
	return nil
}

func (s *Session) selectBank(ctx context.Context, title string) (*ledger.Bank, error) {
	if len(s.ledger.Banks()) == 0 {
		return nil, ledger.ErrNoBanks
	}
	name, err := s.prompt.Select(ctx, title, bankChoices(s.ledger.Banks(), s.currency), "")
	if err != nil {
		return nil, err
	}
	bank, ok := s.ledger.Bank(name)
	if !ok {
		return nil, &ledger.NotFoundError{Bank: name}
	}
	return bank, nil
}

func (s *Session) selectAccount(ctx context.Context, bank *ledger.Bank, title string) (*ledger.Account, error) {
	if len(bank.Accounts) == 0 {
		return nil, ledger.ErrNoAccounts
	}
	name, err := s.prompt.Select(ctx, title, accountChoices(bank, s.currency), "")
	if err != nil {
		return nil, err
	}
	acc, ok := bank.Account(name)
	if !ok {
		return nil, &ledger.NotFoundError{Bank: bank.Name, Account: name}
	}
	return acc, nil
}

func (s *Session) selectTransaction(ctx context.Context, title string) (*ledger.Transaction, error) {
	txns := s.ledger.Transactions(ledger.Filter{})
	if len(txns) == 0 {
		return nil, ledger.ErrNoTransactions
	}
	id, err := s.prompt.Select(ctx, title, transactionChoices(txns, s.currency), "")
	if err != nil {
		return nil, err
	}
	tx, ok := s.ledger.Transaction(id)
	if !ok {
		return nil, &ledger.NotFoundError{Transaction: id}
	}
	return tx, nil
}

func (s *Session) selectKind(ctx context.Context, title string, current ledger.Kind) (ledger.Kind, error) {
	choices := make([]Choice, 0, len(ledger.Kinds))
	for _, k := range ledger.Kinds {
		choices = append(choices, Choice{Label: k.String(), Value: k.String()})
	}

	selected := ""
	if current.Valid() {
		selected = current.String()
	}
	value, err := s.prompt.Select(ctx, title, choices, selected)
	if err != nil {
		return 0, err
	}
	return ledger.ParseKind(value)
}
