package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/wallet-service/internal/db"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := db.NewPool(cmd.Context(), a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.RunMigrations(pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be >= 1, got %d", steps)
			}
			pool, err := db.NewPool(cmd.Context(), a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.RollbackMigrations(pool, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reverted %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")
	cmd.AddCommand(down)

	return cmd
}
