package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/wallet-service/internal/auth"
)

func newTokenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint bearer tokens for local testing",
	}
	cmd.AddCommand(newUserTokenCommand(a), newInternalTokenCommand(a))
	return cmd
}

func newUserTokenCommand(a *app) *cobra.Command {
	var sub, email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Sign a user token with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl == 0 {
				ttl = a.cfg.JWTUserTTL
			}
			tok, err := auth.NewUserTokens(a.cfg.JWTSecret, ttl).Issue(sub, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "sub", "", "user id (required)")
	_ = cmd.MarkFlagRequired("sub")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_USER_TTL)")

	return cmd
}

func newInternalTokenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "internal",
		Short: "Mint a five-minute internal service token with JWT_INTERNAL_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := auth.NewInternalTokens(a.cfg.JWTInternalSecret).Mint()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}
