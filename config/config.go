// Package config loads runtime settings for maestro from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile  = ".env"
	defaultDataDir  = "."
	defaultBackend  = BackendJSON
	defaultCurrency = "USD"
	defaultLogLevel = "error"

	dataDirEnvVar  = "MAESTRO_DATA_DIR"
	backendEnvVar  = "MAESTRO_BACKEND"
	currencyEnvVar = "MAESTRO_CURRENCY"
	logLevelEnvVar = "MAESTRO_LOG_LEVEL"
	logFileEnvVar  = "MAESTRO_LOG_FILE"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config captures application runtime configuration.
type Config struct {
	DataDir  string // Directory holding setup.json/transactions.json or maestro.db
	Backend  string // BackendJSON or BackendSQLite
	Currency string // ISO 4217 code used when displaying amounts
	LogLevel string
	LogFile  string // Empty logs to stderr
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DataDir:  defaultDataDir,
		Backend:  defaultBackend,
		Currency: defaultCurrency,
		LogLevel: defaultLogLevel,
	}
}

// Load reads envFile (".env" when empty) into the process environment if it
// exists, then builds a Config from MAESTRO_* variables.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := Config{
		DataDir:  getEnv(dataDirEnvVar, defaultDataDir),
		Backend:  strings.ToLower(getEnv(backendEnvVar, defaultBackend)),
		Currency: strings.ToUpper(getEnv(currencyEnvVar, defaultCurrency)),
		LogLevel: strings.ToLower(getEnv(logLevelEnvVar, defaultLogLevel)),
		LogFile:  os.Getenv(logFileEnvVar),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the backend, data directory and currency code.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q, expected %s or %s", c.Backend, BackendJSON, BackendSQLite)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory must be set")
	}
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	return nil
}

// Path joins name onto the data directory.
func (c Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// contextKey is a private type to avoid key collisions in context.
type contextKey struct{}

// WithContext returns a new context with the Config attached.
func (c Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext retrieves the Config from context.
// Returns the default Config if not found.
func FromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(contextKey{}).(Config); ok {
		return cfg
	}
	return Default()
}
