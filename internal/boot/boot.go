// Package boot applies environment overrides on top of the file configuration.
package boot

import (
	"os"
	"strconv"
	"strings"

	"github.com/memohai/ssmcontacts/internal/config"
)

// Environment variables consulted by ApplyEnv. AWS_REGION wins over
// AWS_DEFAULT_REGION when both are set, matching the AWS SDKs.
const (
	EnvHTTPAddr      = "HTTP_ADDR"
	EnvRateLimit     = "SSM_CONTACTS_RATE_LIMIT"
	EnvAccountID     = "SSM_CONTACTS_ACCOUNT_ID"
	EnvSeedFile      = "SSM_CONTACTS_SEED_FILE"
	EnvRegion        = "AWS_REGION"
	EnvDefaultRegion = "AWS_DEFAULT_REGION"
	EnvLogLevel      = "LOG_LEVEL"
)

// ApplyEnv returns cfg with any non-empty environment overrides applied and
// validates the result. getenv is usually os.Getenv.
func ApplyEnv(cfg config.Config, getenv func(string) string) (config.Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if value := lookup(EnvHTTPAddr); value != "" {
		cfg.Server.Addr = value
	}
	if value := lookup(EnvRateLimit); value != "" {
		limit, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return cfg, &envError{key: EnvRateLimit, err: err}
		}
		cfg.Server.RateLimit = limit
	}
	if value := lookup(EnvAccountID); value != "" {
		cfg.Emulator.AccountID = value
	}
	if value := lookup(EnvDefaultRegion); value != "" {
		cfg.Emulator.DefaultRegion = value
	}
	if value := lookup(EnvRegion); value != "" {
		cfg.Emulator.DefaultRegion = value
	}
	if value := lookup(EnvSeedFile); value != "" {
		cfg.Emulator.SeedFile = value
	}
	if value := lookup(EnvLogLevel); value != "" {
		cfg.Log.Level = value
	}
	return cfg, cfg.Validate()
}

type envError struct {
	key string
	err error
}

func (e *envError) Error() string { return "invalid " + e.key + ": " + e.err.Error() }

func (e *envError) Unwrap() error { return e.err }
