package main

import (
	"github.com/spf13/cobra"

	"github.com/preptrack/preptrack-go/internal/repository"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the MySQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newMigrateDirectionCommand(repository.MigrateUp, "Apply all pending migrations"),
		newMigrateDirectionCommand(repository.MigrateDown, "Roll back the most recent migration"),
		newMigrateDirectionCommand(repository.MigrateStatus, "Print the applied state of every migration"),
	)
	return cmd
}

func newMigrateDirectionCommand(direction repository.MigrateDirection, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}

			db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return repository.Migrate(ctx, db, direction, logger)
		},
	}
}
