package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/unibase-labs/aip-skill/internal/branding"
)

// Environment variable names recognized by Load. The wallet and Membase
// names match what the platform documents for its skills, so they are bound
// verbatim; the CLI's own variables derive from the branding env prefix.
const (
	EnvWalletAddress  = "USER_WALLET_ADDRESS"
	EnvMembaseAccount = "MEMBASE_ACCOUNT"
	EnvMembaseSecret  = "MEMBASE_SECRET_KEY"
)

var (
	EnvEndpoint = branding.EnvVar("ENDPOINT")
	EnvLogLevel = branding.EnvVar("LOG_LEVEL")
)

// ErrMissingWallet is returned when a command that acts on behalf of the
// user's wallet runs without USER_WALLET_ADDRESS set.
var ErrMissingWallet = errors.New("missing env: set " + EnvWalletAddress)

// Config holds the runtime configuration resolved once at process start.
// Handlers receive it explicitly; nothing reads the environment after Load.
type Config struct {
	Endpoint       string
	WalletAddress  string
	MembaseAccount string
	MembaseSecret  string
	LogLevel       string
}

// Load resolves configuration from the process environment, layered over an
// optional .env file in the working directory. Real environment variables
// take precedence over .env entries. Only the endpoint has a default.
func Load() (Config, error) {
	v := viper.New()

	// A .env file is optional; only a malformed one is an error.
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("reading .env file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetDefault(EnvEndpoint, branding.DefaultEndpoint())

	cfg := Config{
		Endpoint:       strings.TrimRight(v.GetString(EnvEndpoint), "/"),
		WalletAddress:  v.GetString(EnvWalletAddress),
		MembaseAccount: v.GetString(EnvMembaseAccount),
		MembaseSecret:  v.GetString(EnvMembaseSecret),
		LogLevel:       v.GetString(EnvLogLevel),
	}
	return cfg, nil
}

// RequireWallet returns ErrMissingWallet if no wallet address is configured.
// Commands that do not act on behalf of the wallet never call this.
func (c Config) RequireWallet() error {
	if c.WalletAddress == "" {
		return ErrMissingWallet
	}
	return nil
}

// UserID returns the platform user identifier derived from the wallet address.
func (c Config) UserID() string {
	return "user:" + c.WalletAddress
}

// MemoryEnabled reports whether conversation-memory credentials are present.
func (c Config) MemoryEnabled() bool {
	return c.MembaseAccount != "" && c.MembaseSecret != ""
}

// Redacted returns the resolved configuration as a map suitable for display,
// with sensitive values masked.
func (c Config) Redacted() map[string]string {
	return map[string]string{
		EnvEndpoint:       c.Endpoint,
		EnvWalletAddress:  c.WalletAddress,
		EnvMembaseAccount: c.MembaseAccount,
		EnvMembaseSecret:  RedactValue(EnvMembaseSecret, c.MembaseSecret),
	}
}

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL"}

// RedactValue returns a redacted version of value if the key name contains
// a sensitive pattern (case-insensitive substring match).
// Values with 4+ chars show the first 4 chars + "***".
// Values with fewer than 4 chars are fully redacted as "***".
func RedactValue(key, value string) string {
	if value == "" {
		return ""
	}
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}
