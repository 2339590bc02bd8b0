package cli

import (
	"github.com/spf13/cobra"

	"github.com/unibase-labs/aip-skill/internal/aip"
)

func init() {
	rootCmd.AddCommand(registerUserCmd, listUsersCmd)
}

var registerUserCmd = &cobra.Command{
	Use:   "register_user [email]",
	Short: "Register the configured wallet as a platform user",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegisterUser,
}

var listUsersCmd = &cobra.Command{
	Use:   "list_users [limit] [offset]",
	Short: "List registered platform users",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runListUsers,
}

type userList struct {
	Users  []aip.User `json:"users"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func runRegisterUser(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireWallet(); err != nil {
		return err
	}
	email := ""
	if len(args) == 1 {
		email = args[0]
	}

	client := newClient(cfg)
	confirmation, err := client.RegisterUser(cmd.Context(), cfg.WalletAddress, email)
	if err != nil {
		return err
	}
	return emit(cmd, confirmation)
}

func runListUsers(cmd *cobra.Command, args []string) error {
	limit, offset, err := parsePage(args)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	page, err := client.ListUsers(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}

	users := page.Items
	if users == nil {
		users = []aip.User{}
	}
	return emit(cmd, userList{
		Users:  users,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	})
}
