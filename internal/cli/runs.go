package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listRunsCmd, getRunDetailsCmd)
}

var listRunsCmd = &cobra.Command{
	Use:   "list_runs [limit] [offset]",
	Short: "List the user's agent invocation history",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runListRuns,
}

var getRunDetailsCmd = &cobra.Command{
	Use:   "get_run_details <run_id>",
	Short: "Get one run's recorded events and payments",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetRunDetails,
}

type runList struct {
	Runs   []map[string]any `json:"runs"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type runDetails struct {
	RunID    string           `json:"run_id"`
	Events   []map[string]any `json:"events"`
	Payments []map[string]any `json:"payments"`
}

func runListRuns(cmd *cobra.Command, args []string) error {
	limit, offset, err := parsePage(args)
	if err != nil {
		return err
	}
	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	client := newClient(cfg)
	page, err := client.ListUserRuns(cmd.Context(), cfg.UserID(), limit, offset)
	if err != nil {
		return err
	}

	runs := page.Items
	if runs == nil {
		runs = []map[string]any{}
	}
	return emit(cmd, runList{
		Runs:   runs,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	})
}

func runGetRunDetails(cmd *cobra.Command, args []string) error {
	runID := args[0]

	client := newClient(cfg)
	events, err := client.GetRunEvents(cmd.Context(), runID)
	if err != nil {
		return err
	}
	payments, err := client.GetRunPayments(cmd.Context(), runID)
	if err != nil {
		return err
	}

	if events == nil {
		events = []map[string]any{}
	}
	if payments == nil {
		payments = []map[string]any{}
	}
	return emit(cmd, runDetails{
		RunID:    runID,
		Events:   events,
		Payments: payments,
	})
}
