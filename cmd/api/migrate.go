package main

import (
	"fmt"
	"time"

	"edupay/internal/adapter/persistence/repository"
	"edupay/internal/config"
	"edupay/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

func migrateCmd(configFile *string) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the payments table and its user index if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg.DynamoDB)
			if err != nil {
				return err
			}

			created, err := repository.EnsurePaymentsTable(cmd.Context(), ddb, cfg.DynamoDB.PaymentsTable, wait)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created table %s\n", cfg.DynamoDB.PaymentsTable)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "table %s already exists\n", cfg.DynamoDB.PaymentsTable)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 2*time.Minute, "how long to wait for the table to become active")
	return cmd
}
