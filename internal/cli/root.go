package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unibase-labs/aip-skill/internal/aip"
	"github.com/unibase-labs/aip-skill/internal/branding"
	"github.com/unibase-labs/aip-skill/internal/config"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// cfg is resolved once per invocation by the root PersistentPreRunE.
// Handlers only read it.
var cfg config.Config

// newClient builds the platform client for the resolved configuration.
// Handlers call it lazily, after request validation, so invalid requests
// never construct a client. Tests substitute a double here.
var newClient = func(c config.Config) aip.Client {
	opts := []aip.Option{aip.WithUserAgent(branding.UserAgent())}
	if c.MemoryEnabled() {
		opts = append(opts, aip.WithMemoryCredentials(c.MembaseAccount, c.MembaseSecret))
	}
	return aip.NewHTTPClient(c.Endpoint, opts...)
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <command> [args...]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` exposes the Unibase AIP agent marketplace as single-shot
commands: discovery, invocation, streaming, pricing, run history,
registration, and a health probe. Each invocation prints exactly one JSON
value to stdout and exits 0 on success, 1 on any error.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		configureLogging(cfg.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("usage: %s <command> [args...] (run `%s help` for the command list)",
			branding.CLIName(), branding.CLIName())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs one command invocation with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return Run(os.Args[1:], os.Stdout)
}

// Run dispatches args and guarantees exactly one JSON value on out: the
// command result on success, {"error": "..."} on any failure. The returned
// error, if any, maps to process exit code 1.
func Run(args []string, out io.Writer) error {
	if args == nil {
		// Cobra treats nil args as "use os.Args".
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		writeError(out, err)
		return err
	}
	return nil
}

// configureLogging routes diagnostics to stderr so stdout stays JSON-only.
func configureLogging(level string) {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
