package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCheckCmd)
}

var healthCheckCmd = &cobra.Command{
	Use:   "health_check",
	Short: "Check whether the platform endpoint is serving traffic",
	Args:  cobra.NoArgs,
	RunE:  runHealthCheck,
}

type healthResult struct {
	Healthy  bool   `json:"healthy"`
	Endpoint string `json:"endpoint"`
}

func runHealthCheck(cmd *cobra.Command, args []string) error {
	client := newClient(cfg)
	healthy, err := client.HealthCheck(cmd.Context())
	if err != nil {
		// An unreachable platform is data, not a dispatch failure.
		slog.Debug("health probe failed", "endpoint", cfg.Endpoint, "error", err)
		healthy = false
	}
	return emit(cmd, healthResult{
		Healthy:  healthy,
		Endpoint: cfg.Endpoint,
	})
}
