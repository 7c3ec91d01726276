package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/robinvdvleuten/maestro/config"
	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/logging"
	"github.com/robinvdvleuten/maestro/output"
	"github.com/robinvdvleuten/maestro/storage"
	"github.com/robinvdvleuten/maestro/telemetry"
)

// app is what every command runs against: the resolved config, a logger, the
// opened backend and the ledger loaded from it.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	backend storage.Backend
	ledger  *ledger.Ledger

	collector *telemetry.TimingCollector
	root      telemetry.Timer
	logFile   io.Closer
}

// open resolves the configuration, opens the backend and loads the ledger.
// The returned context carries the config and, with --telemetry, a collector
// rooted at "maestro <command>". Call close when done.
func (g *Globals) open(ctx context.Context, command string, stderr io.Writer) (context.Context, *app, error) {
	cfg, err := g.Config()
	if err != nil {
		return ctx, nil, err
	}
	ctx = cfg.WithContext(ctx)

	a := &app{cfg: cfg}

	logOut := stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return ctx, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logOut = f
	}
	a.logger = logging.New(logOut, cfg.LogLevel)
	a.logger.Debug("starting", "command", command, "version", Version, "commit", CommitSHA)

	if g.Telemetry {
		a.collector = telemetry.NewTimingCollector()
		ctx = telemetry.WithCollector(ctx, a.collector)
		a.root = a.collector.Start("maestro " + command)
	}

	a.backend, err = storage.Open(cfg)
	if err != nil {
		a.close(stderr)
		return ctx, nil, err
	}

	a.ledger, err = storage.Load(ctx, a.backend)
	if err != nil {
		a.logger.Error("failed to load ledger", "backend", cfg.Backend, "data_dir", cfg.DataDir, "error", err)
		a.close(stderr)
		return ctx, nil, err
	}

	a.logger.Debug("ledger loaded",
		"backend", cfg.Backend, "data_dir", cfg.DataDir,
		"banks", len(a.ledger.Banks()), "transactions", a.ledger.Len())
	return ctx, a, nil
}

// close releases the backend and log file and prints the telemetry report.
func (a *app) close(stderr io.Writer) {
	if a.root != nil {
		a.root.End()
		_, _ = fmt.Fprintln(stderr)
		a.collector.Report(stderr, output.NewStyles(stderr))
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("failed to close backend", "error", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
