package cli

import (
	"strings"

	"github.com/robinvdvleuten/maestro/config"
)

// Build information, set by the maestro binary at startup.
var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands. Flags that are set
// override the values loaded from the environment and the env file.
type Globals struct {
	DataDir   string `help:"Directory holding the ledger data (MAESTRO_DATA_DIR)." placeholder:"DIR" type:"path"`
	Backend   string `help:"Storage backend: json or sqlite (MAESTRO_BACKEND)." placeholder:"NAME"`
	Currency  string `help:"ISO currency code used to display amounts (MAESTRO_CURRENCY)." placeholder:"CODE"`
	EnvFile   string `help:"Env file to load settings from." default:".env" placeholder:"FILE"`
	LogLevel  string `help:"Log level: debug, info, warn or error (MAESTRO_LOG_LEVEL)." placeholder:"LEVEL"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Run          RunCmd          `cmd:"" default:"1" help:"Start the interactive session (default)."`
	Init         InitCmd         `cmd:"" help:"Run the setup wizard to create banks and accounts."`
	Balances     BalancesCmd     `cmd:"" help:"Print bank and account balances."`
	Transactions TransactionsCmd `cmd:"" help:"Print the transaction log."`
	Check        CheckCmd        `cmd:"" help:"Check the stored ledger for integrity problems."`
	Serve        ServeCmd        `cmd:"" help:"Serve balances and transactions as a read-only JSON API."`
}

// Config loads the configuration and applies the flags on top.
func (g *Globals) Config() (config.Config, error) {
	cfg, err := config.Load(g.EnvFile)
	if err != nil {
		return config.Config{}, err
	}

	if g.DataDir != "" {
		cfg.DataDir = g.DataDir
	}
	if g.Backend != "" {
		cfg.Backend = strings.ToLower(g.Backend)
	}
	if g.Currency != "" {
		cfg.Currency = strings.ToUpper(g.Currency)
	}
	if g.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(g.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
