// Package commands builds the walletctl operator CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/baharkarakas/wallet-service/internal/config"
)

// Version is set via ldflags during build.
var Version = "dev"

// app carries the loaded configuration to every subcommand.
type app struct {
	configPath string
	cfg        config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "walletctl",
		Short:   "Operate the wallet service",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $WALLET_CONFIG)")

	rootCmd.AddCommand(
		newMigrateCommand(a),
		newTokenCommand(a),
		newTransactCommand(a),
		newBalanceCommand(a),
	)

	return rootCmd
}
