package main

import (
	"lead_tracker/internal/config"
	"lead_tracker/internal/repository"
	"lead_tracker/internal/seed"

	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe the database and load demo data",
	Long: `Deletes every user and lead, then creates the demo account
test@erino.io / test1234 owning 150 random leads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		dbPool, err := config.ConnectDB(ctx, cfg, logger)
		if err != nil {
			return withExitCode(exitDatabase, err)
		}
		defer dbPool.Close()

		if err := config.EnsureSchema(ctx, dbPool); err != nil {
			return withExitCode(exitDatabase, err)
		}

		seeder := seed.NewSeeder(repository.NewUserRepository(dbPool), repository.NewLeadRepository(dbPool), nil, logger)
		if _, err := seeder.Run(ctx); err != nil {
			return withExitCode(exitDatabase, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
