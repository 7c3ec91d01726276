package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/robinvdvleuten/maestro/config"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/output"
	"github.com/robinvdvleuten/maestro/storage"
)

type BalancesCmd struct {
	Watch bool `help:"Re-print the balances whenever the stored data changes." short:"w"`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cmd.run(runCtx, ctx.Stdout, ctx.Stderr, globals)
}

func (cmd *BalancesCmd) run(ctx context.Context, stdout, stderr io.Writer, globals *Globals) error {
	ctx, a, err := globals.open(ctx, "balances", stderr)
	if err != nil {
		return err
	}
	defer a.close(stderr)

	printBalances(ctx, stdout, a.ledger)
	if !cmd.Watch {
		return nil
	}

	paths := a.backend.Paths()
	printInfof(stderr, "Watching %s for changes (Ctrl-C to stop)", strings.Join(paths, ", "))

	return storage.Watch(ctx, paths, func() {
		l, err := storage.Load(ctx, a.backend)
		if err != nil {
			a.logger.Error("failed to reload ledger", "error", err)
			printError(stderr, "Failed to reload: "+err.Error())
			return
		}
		_, _ = fmt.Fprintln(stdout)
		printBalances(ctx, stdout, l)
	}, a.logger)
}

func printBalances(ctx context.Context, w io.Writer, l *ledger.Ledger) {
	cfg := config.FromContext(ctx)
	renderBalances(w, output.NewStyles(w), l.Balances(), cfg.Currency)
}

type TransactionsCmd struct {
	Bank    string `help:"Only show transactions of this bank." short:"b"`
	Account string `help:"Only show transactions of this account (requires --bank)." short:"a"`
}

func (cmd *TransactionsCmd) Run(ctx *kong.Context, globals *Globals) error {
	return cmd.run(context.Background(), ctx.Stdout, ctx.Stderr, globals)
}

func (cmd *TransactionsCmd) run(ctx context.Context, stdout, stderr io.Writer, globals *Globals) error {
	if cmd.Account != "" && cmd.Bank == "" {
		return fmt.Errorf("--account requires --bank")
	}

	ctx, a, err := globals.open(ctx, "transactions", stderr)
	if err != nil {
		return err
	}
	defer a.close(stderr)

	txns := a.ledger.Transactions(ledger.Filter{Bank: cmd.Bank, Account: cmd.Account})
	renderTransactions(stdout, output.NewStyles(stdout), txns, config.FromContext(ctx).Currency)
	return nil
}
