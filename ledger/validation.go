package ledger

// Validate checks the structural integrity of the ledger:
//   - bank names are unique, and account names are unique within their bank
//   - every transaction references an existing bank and account
//   - transaction ids are unique
//   - every refund references an existing transaction
//
// It returns *ValidationErrors listing every problem found, or nil. Operations keep
// these properties on their own; Validate is meant for documents loaded from disk.
func (l *Ledger) Validate() error {
	var errs []error

	seenBanks := make(map[string]bool, len(l.banks))
	for _, b := range l.banks {
		if seenBanks[b.Name] {
			errs = append(errs, &DuplicateNameError{Bank: b.Name})
		}
		seenBanks[b.Name] = true

		seenAccounts := make(map[string]bool, len(b.Accounts))
		for _, a := range b.Accounts {
			if seenAccounts[a.Name] {
				errs = append(errs, &DuplicateNameError{Bank: b.Name, Account: a.Name})
			}
			seenAccounts[a.Name] = true
		}
	}

	ids := make(map[string]bool, len(l.transactions))
	for _, tx := range l.transactions {
		if ids[tx.ID] {
			errs = append(errs, &DuplicateIDError{ID: tx.ID})
		}
		ids[tx.ID] = true

		if _, acc := l.Lookup(tx.Bank, tx.Account); acc == nil {
			errs = append(errs, &OrphanedTransactionError{Transaction: tx})
		}
	}

	for _, tx := range l.transactions {
		if tx.IsRefund() && !ids[tx.RefundedTransactionID] {
			errs = append(errs, &DanglingRefundError{Transaction: tx})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
