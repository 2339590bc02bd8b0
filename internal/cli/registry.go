package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unibase-labs/aip-skill/internal/agentspec"
)

var registerAgentFile string

func init() {
	registerAgentCmd.Flags().StringVarP(&registerAgentFile, "file", "f", "", "Read the agent config from a JSON or YAML file instead of an inline argument")
	rootCmd.AddCommand(registerAgentCmd, unregisterAgentCmd)
}

var registerAgentCmd = &cobra.Command{
	Use:   "register_agent <agent_config_json>",
	Short: "Register a new agent on the marketplace",
	Long: `Register a new agent on the marketplace.

The agent config is a JSON object (inline argument) or a JSON/YAML file
via --file. It is validated locally before the platform is contacted;
'handle' and 'name' are required, and 'version' must be semver if present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegisterAgent,
}

var unregisterAgentCmd = &cobra.Command{
	Use:   "unregister_agent <agent_id>",
	Short: "Remove an agent from the marketplace",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnregisterAgent,
}

func runRegisterAgent(cmd *cobra.Command, args []string) error {
	var (
		agentCfg map[string]any
		err      error
	)
	switch {
	case registerAgentFile != "":
		agentCfg, err = agentspec.ParseFile(registerAgentFile)
	case len(args) == 1:
		agentCfg, err = agentspec.ParseJSON(args[0])
	default:
		return fmt.Errorf("register_agent requires an agent config: pass a JSON object or --file")
	}
	if err != nil {
		return err
	}
	if err := agentspec.Validate(agentCfg); err != nil {
		return err
	}

	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	client := newClient(cfg)
	confirmation, err := client.RegisterAgent(cmd.Context(), cfg.UserID(), agentCfg)
	if err != nil {
		return err
	}
	return emit(cmd, confirmation)
}

func runUnregisterAgent(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	client := newClient(cfg)
	confirmation, err := client.UnregisterAgent(cmd.Context(), cfg.UserID(), args[0])
	if err != nil {
		return err
	}
	return emit(cmd, confirmation)
}
