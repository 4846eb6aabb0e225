package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kustommania/config"
	"kustommania/database"
	"kustommania/logger"
)

// openDB connects and migrates the configured database
func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if _, err := openDB(cfg); err != nil {
			return err
		}
		logger.GetLogger().Info("database migrated", zap.String("driver", cfg.DBDriver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default site configuration and sample motorcycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		return database.SeedData(db, cfg.DefaultWhatsAppNumber)
	},
}
