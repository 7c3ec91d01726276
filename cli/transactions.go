package cli

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/output"
	"github.com/shopspring/decimal"
)

func (s *Session) addTransaction(ctx context.Context) error {
	bank, err := s.selectBank(ctx, "Select bank for transaction:")
	if err != nil {
		return err
	}
	acc, err := s.selectAccount(ctx, bank, "Select account:")
	if err != nil {
		return err
	}
	kind, err := s.selectKind(ctx, "Select transaction type:", 0)
	if err != nil {
		return err
	}
	amount, err := s.prompt.Input(ctx, "Enter amount:", "")
	if err != nil {
		return err
	}
	if _, err := ledger.ParseTransactionAmount(amount); err != nil {
		return err
	}
	description, err := s.prompt.Input(ctx, "Enter description:", "")
	if err != nil {
		return err
	}

	delta, err := s.ledger.AddTransaction(bank.Name, acc.Name, kind, amount, description)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	tx := delta.Transaction
	s.logger.Debug("transaction added",
		"id", tx.ID, "bank", tx.Bank, "account", tx.Account,
		"type", tx.Kind.String(), "amount", tx.Amount.String())
	printSuccess(s.out, "Transaction added successfully!")
	printInfof(s.out, "%s - %s balance: %s", tx.Bank, tx.Account, s.money(delta.Account.Balance))
	return nil
}

func (s *Session) editTransaction(ctx context.Context) error {
	tx, err := s.selectTransaction(ctx, "Select transaction to edit:")
	if err != nil {
		return err
	}
	kind, err := s.selectKind(ctx, "Select new transaction type:", tx.Kind)
	if err != nil {
		return err
	}
	amount, err := s.prompt.Input(ctx, "Enter new amount:", tx.Amount.String())
	if err != nil {
		return err
	}
	if _, err := ledger.ParseEditAmount(tx, amount); err != nil {
		return err
	}
	description, err := s.prompt.Input(ctx, "Enter new description:", tx.Description)
	if err != nil {
		return err
	}

	delta, err := s.ledger.EditTransaction(tx.ID, kind, amount, description)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("transaction edited",
		"id", tx.ID, "bank", tx.Bank, "account", tx.Account,
		"before", delta.Before.String(), "after", delta.After.String())
	printSuccess(s.out, "Transaction edited successfully!")
	if delta.Adjusted() {
		printInfof(s.out, "%s - %s balance: %s", tx.Bank, tx.Account, s.money(delta.Account.Balance))
	} else {
		printInfof(s.out, "Account '%s - %s' no longer exists; no balance was adjusted.", tx.Bank, tx.Account)
	}
	return nil
}

func (s *Session) refundTransaction(ctx context.Context) error {
	tx, err := s.selectTransaction(ctx, "Select transaction to refund:")
	if err != nil {
		return err
	}
	amount, err := s.prompt.Input(ctx, "Enter refund amount (default full amount):", tx.Amount.String())
	if err != nil {
		return err
	}

	delta, err := s.ledger.RefundTransaction(tx.ID, amount)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("transaction refunded",
		"id", delta.Refund.ID, "refunded_transaction_id", tx.ID,
		"bank", tx.Bank, "account", tx.Account, "amount", delta.Refund.Amount.String())
	printSuccess(s.out, "Refund transaction added successfully!")
	if delta.Clamped {
		printInfof(s.out, "Requested %s exceeds the original amount; refunded %s.",
			s.money(delta.Requested), s.money(delta.Refund.Amount))
	}
	if refunded := s.ledger.RefundedTotal(tx.ID); refunded.GreaterThan(tx.Amount) {
		printInfof(s.out, "Transaction %s has now been refunded %s in total, more than its %s.",
			tx.ID, s.money(refunded), s.money(tx.Amount))
	}
	return nil
}

func (s *Session) viewTransactions(ctx context.Context) error {
	if s.ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.out, "No transactions available.")
		return nil
	}

	choice, err := s.menu(ctx, "View transactions:", filterAll, filterBank, filterAccount)
	if err != nil {
		return err
	}

	var f ledger.Filter
	if choice == filterBank || choice == filterAccount {
		f.Bank, err = s.prompt.Select(ctx, "Select bank:", nameChoices(s.ledger.TransactionBanks()), "")
		if err != nil {
			return err
		}
	}
	if choice == filterAccount {
		f.Account, err = s.prompt.Select(ctx, "Select account:", nameChoices(s.ledger.TransactionAccounts(f.Bank)), "")
		if err != nil {
			return err
		}
	}

	renderTransactions(s.out, s.styles, s.ledger.Transactions(f), s.currency)
	return nil
}

func (s *Session) viewBalance(ctx context.Context) error {
	renderBalances(s.out, s.styles, s.ledger.Balances(), s.currency)
	return nil
}

func (s *Session) money(amount decimal.Decimal) string {
	return output.FormatMoney(amount, s.currency)
}
