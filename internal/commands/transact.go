package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/baharkarakas/wallet-service/internal/auth"
	"github.com/baharkarakas/wallet-service/internal/models"
	"github.com/baharkarakas/wallet-service/internal/walletclient"
)

func newTransactCommand(a *app) *cobra.Command {
	var userID, typ, amount string

	cmd := &cobra.Command{
		Use:   "transact",
		Short: "Post a transaction through the internal endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := models.TransactionType(strings.ToUpper(typ))
			if !t.Valid() {
				return fmt.Errorf("--type must be CREDIT or DEBIT, got %q", typ)
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}

			c := walletclient.New(a.cfg.WalletServiceURL, auth.NewInternalTokens(a.cfg.JWTInternalSecret))
			view, err := c.CreateTransaction(cmd.Context(), userID, t, amt)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&typ, "type", "", "CREDIT or DEBIT (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount, e.g. 12.50 (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newBalanceCommand(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Read the balance of the user a token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := walletclient.New(a.cfg.WalletServiceURL, auth.NewInternalTokens(a.cfg.JWTInternalSecret))
			bal, err := c.Balance(cmd.Context(), token)
			if err != nil {
				return err
			}
			return printJSON(cmd, bal)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "user bearer token (required)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
