package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/output"
)

// dateLayout is how transaction timestamps are shown: seconds precision, no zone.
const dateLayout = "2006-01-02T15:04:05"

func bankLabel(b *ledger.Bank, currency string) string {
	return fmt.Sprintf("%s (Total: %s)", b.Name, output.FormatMoney(b.Total(), currency))
}

func accountLabel(a *ledger.Account, currency string) string {
	return fmt.Sprintf("%s (Balance: %s)", a.Name, output.FormatMoney(a.Balance, currency))
}

func transactionLabel(tx *ledger.Transaction, currency string) string {
	return fmt.Sprintf("%s | %s - %s | %s %s | %s",
		tx.Date.Format(dateLayout), tx.Bank, tx.Account,
		tx.Kind, output.FormatMoney(tx.Amount, currency), tx.Description)
}

func bankChoices(banks []*ledger.Bank, currency string) []Choice {
	choices := make([]Choice, 0, len(banks))
	for _, b := range banks {
		choices = append(choices, Choice{Label: bankLabel(b, currency), Value: b.Name})
	}
	return choices
}

func accountChoices(b *ledger.Bank, currency string) []Choice {
	choices := make([]Choice, 0, len(b.Accounts))
	for _, a := range b.Accounts {
		choices = append(choices, Choice{Label: accountLabel(a, currency), Value: a.Name})
	}
	return choices
}

func transactionChoices(txns []*ledger.Transaction, currency string) []Choice {
	choices := make([]Choice, 0, len(txns))
	for _, tx := range txns {
		choices = append(choices, Choice{Label: transactionLabel(tx, currency), Value: tx.ID})
	}
	return choices
}

func nameChoices(names []string) []Choice {
	choices := make([]Choice, 0, len(names))
	for _, n := range names {
		choices = append(choices, Choice{Label: n, Value: n})
	}
	return choices
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-runewidth.StringWidth(s)))
}

// padLeft right-aligns s in width display columns.
func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(0, width-runewidth.StringWidth(s))) + s
}

// renderBalances writes every bank with its total and per-account balances.
// Account amounts are right-aligned within each bank.
func renderBalances(w io.Writer, styles *output.Styles, balances []ledger.BankBalance, currency string) {
	if len(balances) == 0 {
		_, _ = fmt.Fprintln(w, "No banks or accounts available.")
		return
	}

	_, _ = fmt.Fprintln(w, styles.Keyword("Account Balances:"))
	for _, bb := range balances {
		total := output.FormatMoney(bb.Total, currency)
		_, _ = fmt.Fprintf(w, "\nBank: %s (Total Balance: %s)\n",
			styles.Bank(bb.Name), styles.Amount(total, bb.Total))

		if len(bb.Accounts) == 0 {
			_, _ = fmt.Fprintln(w, styles.Dim("  No accounts available."))
			continue
		}

		nameWidth, amountWidth := 0, 0
		amounts := make([]string, len(bb.Accounts))
		for i, ab := range bb.Accounts {
			amounts[i] = output.FormatMoney(ab.Balance, currency)
			nameWidth = max(nameWidth, runewidth.StringWidth(ab.Name))
			amountWidth = max(amountWidth, runewidth.StringWidth(amounts[i]))
		}
		for i, ab := range bb.Accounts {
			_, _ = fmt.Fprintf(w, "  - %s  %s\n",
				styles.Account(padRight(ab.Name, nameWidth)),
				styles.Amount(padLeft(amounts[i], amountWidth), ab.Balance))
		}
	}
	_, _ = fmt.Fprintln(w, "\n"+strings.Repeat("=", headerWidth))
}

// renderTransactions writes the transactions as an aligned table in log order.
func renderTransactions(w io.Writer, styles *output.Styles, txns []*ledger.Transaction, currency string) {
	if len(txns) == 0 {
		_, _ = fmt.Fprintln(w, "No transactions available.")
		return
	}

	header := []string{"ID", "Date", "Account", "Type", "Amount", "Description"}
	rows := make([][]string, 0, len(txns))
	for _, tx := range txns {
		desc := tx.Description
		if tx.IsRefund() && desc == "" {
			desc = "Refund for transaction " + tx.RefundedTransactionID
		}
		rows = append(rows, []string{
			tx.ID,
			tx.Date.Format(dateLayout),
			tx.Bank + " - " + tx.Account,
			tx.Kind.String(),
			output.FormatMoney(ledger.SignedAmount(tx.Kind, tx.Amount), currency),
			desc,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	const amountCol = 4
	last := len(header) - 1
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = cell(h, widths[i], i == amountCol, i == last)
	}
	_, _ = fmt.Fprintln(w, styles.Keyword(strings.Join(cells, "  ")))

	for r, row := range rows {
		tx := txns[r]
		for i, c := range row {
			cells[i] = cell(c, widths[i], i == amountCol, i == last)
		}
		cells[0] = styles.ID(cells[0])
		cells[2] = styles.Account(cells[2])
		cells[amountCol] = styles.Amount(cells[amountCol], ledger.SignedAmount(tx.Kind, tx.Amount))
		_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	_, _ = fmt.Fprintln(w, styles.Dim(fmt.Sprintf("\n%d transaction(s)", len(txns))))
}

func cell(s string, width int, alignRight, last bool) string {
	switch {
	case alignRight:
		return padLeft(s, width)
	case last:
		return s
	default:
		return padRight(s, width)
	}
}
