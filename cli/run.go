package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type RunCmd struct{}

func (cmd *RunCmd) Run(ctx *kong.Context, globals *Globals) error {
	return cmd.run(context.Background(), NewHuhPrompter(os.Stdin, ctx.Stdout), ctx.Stdout, ctx.Stderr, globals)
}

func (cmd *RunCmd) run(ctx context.Context, prompt Prompter, stdout, stderr io.Writer, globals *Globals) error {
	ctx, a, err := globals.open(ctx, "session", stderr)
	if err != nil {
		return err
	}
	defer a.close(stderr)

	session := NewSession(a.ledger, a.backend, prompt, stdout,
		WithCurrency(a.cfg.Currency),
		WithLogger(a.logger),
	)
	return session.Run(ctx)
}

type InitCmd struct {
	Force bool `help:"Replace existing banks without asking." short:"f"`
}

func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	return cmd.run(context.Background(), NewHuhPrompter(os.Stdin, ctx.Stdout), ctx.Stdout, ctx.Stderr, globals)
}

func (cmd *InitCmd) run(ctx context.Context, prompt Prompter, stdout, stderr io.Writer, globals *Globals) error {
	ctx, a, err := globals.open(ctx, "init", stderr)
	if err != nil {
		return err
	}
	defer a.close(stderr)

	session := NewSession(a.ledger, a.backend, prompt, stdout,
		WithCurrency(a.cfg.Currency),
		WithLogger(a.logger),
	)
	printHeader(stdout)

	if len(a.ledger.Banks()) == 0 {
		return session.Setup(ctx)
	}

	if !cmd.Force {
		ok, err := prompt.Confirm(ctx, "Banks already exist. Replace all banks, accounts and transactions?")
		if err != nil && !errors.Is(err, ErrCancelled) {
			return err
		}
		if !ok {
			printInfof(stdout, "Setup cancelled, nothing was changed.")
			return nil
		}
	}
	return session.Reset(ctx)
}
