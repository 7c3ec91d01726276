package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/maestro/ledger"
)

func (s *Session) addBank(ctx context.Context) error {
	name, err := s.prompt.Input(ctx, "Enter new bank name:", "")
	if err != nil {
		return err
	}

	bank, err := s.ledger.AddBank(name)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("bank added", "bank", bank.Name)
	printSuccess(s.out, "Bank added successfully!")
	return nil
}

func (s *Session) renameBank(ctx context.Context) error {
	bank, err := s.selectBank(ctx, "Select bank to rename:")
	if err != nil {
		return err
	}
	oldName := bank.Name
	newName, err := s.prompt.Input(ctx, "Enter new name for the bank:", oldName)
	if err != nil {
		return err
	}

	n, err := s.ledger.RenameBank(oldName, newName)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("bank renamed", "bank", oldName, "new_name", bank.Name, "transactions", n)
	printSuccess(s.out, "Bank renamed successfully!")
	if n > 0 {
		printInfof(s.out, "%d transaction(s) updated.", n)
	}
	return nil
}

func (s *Session) deleteBank(ctx context.Context) error {
	bank, err := s.selectBank(ctx, "Select bank to delete:")
	if err != nil {
		return err
	}
	ok, err := s.prompt.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete bank '%s' and all its accounts?", bank.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}

	n, err := s.ledger.DeleteBank(bank.Name)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("bank deleted", "bank", bank.Name, "transactions", n)
	printSuccess(s.out, "Bank deleted successfully!")
	if n > 0 {
		printInfof(s.out, "%d transaction(s) removed.", n)
	}
	return nil
}

func (s *Session) addAccount(ctx context.Context) error {
	bank, err := s.selectBank(ctx, "Select bank to add account to:")
	if err != nil {
		return err
	}
	name, err := s.prompt.Input(ctx, "Enter new account name:", "")
	if err != nil {
		return err
	}
	if _, exists := bank.Account(strings.TrimSpace(name)); exists {
		return &ledger.ConflictError{Bank: bank.Name, Account: strings.TrimSpace(name)}
	}
	balance, err := s.prompt.Input(ctx, "Enter initial balance (default 0):", "")
	if err != nil {
		return err
	}

	acc, err := s.ledger.AddAccount(bank.Name, name, balance)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("account added", "bank", bank.Name, "account", acc.Name, "balance", acc.Balance.String())
	printSuccess(s.out, "Account added successfully!")
	return nil
}

func (s *Session) renameAccount(ctx context.Context) error {
	bank, err := s.selectBank(ctx, "Select bank:")
	if err != nil {
		return err
	}
	acc, err := s.selectAccount(ctx, bank, "Select account to rename:")
	if err != nil {
		return err
	}
	oldName := acc.Name
	newName, err := s.prompt.Input(ctx, "Enter new account name:", oldName)
	if err != nil {
		return err
	}

	n, err := s.ledger.RenameAccount(bank.Name, oldName, newName)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("account renamed", "bank", bank.Name, "account", oldName, "new_name", acc.Name, "transactions", n)
	printSuccess(s.out, "Account renamed successfully!")
	if n > 0 {
		printInfof(s.out, "%d transaction(s) updated.", n)
	}
	return nil
}

func (s *Session) deleteAccount(ctx context.Context) error {
	bank, err := s.selectBank(ctx, "Select bank:")
	if err != nil {
		return err
	}
	acc, err := s.selectAccount(ctx, bank, "Select account to delete:")
	if err != nil {
		return err
	}
	ok, err := s.prompt.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete account '%s'?", acc.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}

	n, err := s.ledger.DeleteAccount(bank.Name, acc.Name)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	s.logger.Debug("account deleted", "bank", bank.Name, "account", acc.Name, "transactions", n)
	printSuccess(s.out, "Account deleted successfully!")
	if n > 0 {
		printInfof(s.out, "%d transaction(s) removed.", n)
	}
	return nil
}
