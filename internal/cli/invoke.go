package cli

import (
	"github.com/spf13/cobra"

	"github.com/unibase-labs/aip-skill/internal/aip"
)

func init() {
	rootCmd.AddCommand(callAgentCmd, streamAgentCmd, autoRouteCmd)
}

var callAgentCmd = &cobra.Command{
	Use:   "call_agent <agent_handle> <objective>",
	Short: "Invoke an agent with an objective",
	Long: `Invoke an agent with a natural-language objective and wait for the result.

Payment settlement and conversation-memory persistence happen platform-side
as part of the invocation.`,
	Args: cobra.ExactArgs(2),
	RunE: runCallAgent,
}

var streamAgentCmd = &cobra.Command{
	Use:   "stream_agent <agent_handle> <objective>",
	Short: "Invoke an agent and capture its event stream",
	Long: `Invoke an agent and capture its event stream.

Events are buffered in arrival order until the run completes or errors,
then emitted as a single JSON array.`,
	Args: cobra.ExactArgs(2),
	RunE: runStreamAgent,
}

var autoRouteCmd = &cobra.Command{
	Use:   "auto_route <objective>",
	Short: "Let the platform pick the best agent for an objective",
	Args:  cobra.ExactArgs(1),
	RunE:  runAutoRoute,
}

type callResult struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Output    string `json:"output"`
	Agent     string `json:"agent"`
	Objective string `json:"objective"`
}

type routeResult struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Output    string `json:"output"`
	Objective string `json:"objective"`
	Routed    bool   `json:"routed"`
}

func runCallAgent(cmd *cobra.Command, args []string) error {
	handle, objective := args[0], args[1]
	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	client := newClient(cfg)
	result, err := client.Run(cmd.Context(), aip.RunRequest{
		Objective: objective,
		Agent:     handle,
		UserID:    cfg.UserID(),
		Timeout:   aip.DefaultRunTimeout,
	})
	if err != nil {
		return err
	}

	return emit(cmd, callResult{
		Success:   result.Success,
		Status:    result.Status,
		Output:    result.Output,
		Agent:     handle,
		Objective: objective,
	})
}

func runStreamAgent(cmd *cobra.Command, args []string) error {
	handle, objective := args[0], args[1]
	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	client := newClient(cfg)
	events := make([]aip.RunEvent, 0)
	err := client.RunStream(cmd.Context(), aip.RunRequest{
		Objective: objective,
		Agent:     handle,
		UserID:    cfg.UserID(),
	}, func(ev aip.RunEvent) bool {
		events = append(events, ev)
		return !ev.Terminal()
	})
	if err != nil {
		return err
	}

	return emit(cmd, events)
}

func runAutoRoute(cmd *cobra.Command, args []string) error {
	objective := args[0]
	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	// No agent handle: the platform selects one.
	client := newClient(cfg)
	result, err := client.Run(cmd.Context(), aip.RunRequest{
		Objective: objective,
		UserID:    cfg.UserID(),
		Timeout:   aip.DefaultRunTimeout,
	})
	if err != nil {
		return err
	}

	return emit(cmd, routeResult{
		Success:   result.Success,
		Status:    result.Status,
		Output:    result.Output,
		Objective: objective,
		Routed:    true,
	})
}
