package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	errfmt "github.com/robinvdvleuten/maestro/errors"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/telemetry"
)

type CheckCmd struct {
	Format string `help:"Output format for integrity errors: text or json." enum:"text,json" default:"text" short:"F"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	return cmd.run(context.Background(), ctx.Stdout, ctx.Stderr, globals)
}

func (cmd *CheckCmd) run(ctx context.Context, stdout, stderr io.Writer, globals *Globals) error {
	ctx, a, err := globals.open(ctx, "check", stderr)
	if err != nil {
		return err
	}
	defer a.close(stderr)

	timer := telemetry.StartTimer(ctx, "ledger.validate")
	err = a.ledger.Validate()
	timer.End()

	if err == nil && cmd.Format == "json" {
		_, _ = fmt.Fprintln(stdout, errfmt.NewJSONFormatter().FormatAll(nil))
		return nil
	}
	if err == nil {
		accounts := 0
		for _, b := range a.ledger.Banks() {
			accounts += len(b.Accounts)
		}
		printSuccess(stdout, fmt.Sprintf("Check passed: %d bank(s), %d account(s), %d transaction(s)",
			len(a.ledger.Banks()), accounts, a.ledger.Len()))
		return nil
	}

	var validationErrors *ledger.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	a.logger.Debug("check failed", "errors", len(validationErrors.Errors))
	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(stdout, errfmt.NewJSONFormatter().FormatAll(validationErrors.Errors))
		return NewCommandError(1)
	}

	formatter := errfmt.NewTextFormatter(errfmt.WithRecord(func(tx *ledger.Transaction) string {
		return tx.ID + "  " + transactionLabel(tx, a.cfg.Currency)
	}))
	_, _ = fmt.Fprintln(stderr, formatter.FormatAll(validationErrors.Errors))
	printError(stderr, fmt.Sprintf("%d integrity error(s) found", len(validationErrors.Errors)))
	return NewCommandError(1)
}
