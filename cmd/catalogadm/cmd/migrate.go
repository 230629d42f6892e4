package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(env *environment) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  "Apply every pending migration, or revert the latest one with --down.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if down {
				if err := env.db.Rollback(cmd.Context()); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), okFmt("Reverted the latest migration"))
				return nil
			}

			if err := env.db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okFmt("Database is up to date"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "revert the latest migration instead")
	return cmd
}

func newSeedCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill empty tables with sample courses and users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			seeded, err := env.services.Seeder.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), infoFmt("Tables already hold data, nothing seeded"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), okFmt("Sample data inserted"))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the catalogadm version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noDatabase: ""},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "catalogadm", Build)
		},
	}
}
