package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/robinvdvleuten/maestro/web"
)

type ServeCmd struct {
	Port  int    `help:"Port to listen on." default:"8080" short:"p"`
	Host  string `help:"Address to bind to." default:"127.0.0.1"`
	Watch bool   `help:"Reload when the stored data changes and notify clients." short:"w"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cmd.run(runCtx, ctx.Stderr, globals)
}

func (cmd *ServeCmd) run(ctx context.Context, stderr io.Writer, globals *Globals) error {
	ctx, a, err := globals.open(ctx, "serve", stderr)
	if err != nil {
		return err
	}
	defer a.close(stderr)

	server := web.New(cmd.Port, a.backend)
	server.Host = cmd.Host
	server.Currency = a.cfg.Currency
	server.WatchEnabled = cmd.Watch
	server.Logger = a.logger

	printInfof(stderr, "Serving the ledger API on http://%s:%d/api (Ctrl-C to stop)", cmd.Host, cmd.Port)
	return server.Start(ctx)
}
