package cmd

import (
	"log/slog"

	"planets-api/internal/seed"
	"planets-api/internal/shared/config"
	"planets-api/internal/shared/database"
	"planets-api/internal/shared/logger"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Administrative database commands",
}

var dbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.Logging)

		return database.MigrateUp(cfg.DatabaseURL())
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.Logging)

		return database.MigrateDown(cfg.DatabaseURL())
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the fixture planets and test user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.Logging)
		log := slog.Default()

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", "error", err)
			}
		}()

		return seed.Run(cmd.Context(), db, log)
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbCreateCmd)
	dbCmd.AddCommand(dbDropCmd)
	dbCmd.AddCommand(dbSeedCmd)
}
