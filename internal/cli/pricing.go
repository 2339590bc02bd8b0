package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getAgentPriceCmd, listAgentPricesCmd)
}

var getAgentPriceCmd = &cobra.Command{
	Use:   "get_agent_price <agent_id>",
	Short: "Get pricing information for one agent",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetAgentPrice,
}

var listAgentPricesCmd = &cobra.Command{
	Use:   "list_agent_prices [limit] [offset]",
	Short: "List pricing across all agents",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runListAgentPrices,
}

type priceDetail struct {
	AgentID  string         `json:"agent_id"`
	Amount   float64        `json:"amount"`
	Currency string         `json:"currency"`
	Metadata map[string]any `json:"metadata"`
}

type priceList struct {
	Prices []priceDetail `json:"prices"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func runGetAgentPrice(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireWallet(); err != nil {
		return err
	}

	client := newClient(cfg)
	price, err := client.GetAgentPrice(cmd.Context(), cfg.UserID(), args[0])
	if err != nil {
		return err
	}
	return emit(cmd, priceDetail{
		AgentID:  price.Identifier,
		Amount:   price.Amount,
		Currency: price.Currency,
		Metadata: price.Metadata,
	})
}

func runListAgentPrices(cmd *cobra.Command, args []string) error {
	limit, offset, err := parsePage(args)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	page, err := client.ListAgentPrices(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}

	prices := make([]priceDetail, 0, len(page.Items))
	for _, p := range page.Items {
		prices = append(prices, priceDetail{
			AgentID:  p.Identifier,
			Amount:   p.Amount,
			Currency: p.Currency,
			Metadata: p.Metadata,
		})
	}
	return emit(cmd, priceList{
		Prices: prices,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	})
}
