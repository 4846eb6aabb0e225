// File: /database/database.go
package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kustommania/config"
	applog "kustommania/logger"
	"kustommania/models"
)

// Initialize opens the configured database and tunes the connection pool.
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := buildDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.IsProduction() {
		logLevel = logger.Silent
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Open is a shortcut for tests and tools that only have a driver and DSN.
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, err := buildDialector(&config.Config{DBDriver: driver, DatabaseURL: dsn})
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func buildDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn, err := configureMySQLTLS(cfg.DatabaseURL, cfg.DBTLSCA)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(cfg.DatabaseURL), nil
	case "sqlite":
		return sqlite.Open(cfg.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: mysql, postgres, sqlite)", cfg.DBDriver)
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Motorcycle{},
		&models.MotorcycleImage{},
		&models.Lead{},
		&models.SiteConfig{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addCustomIndexes(db)

	return nil
}

func addCustomIndexes(db *gorm.DB) {
	log := applog.GetLogger()

	indexes := []struct {
		model interface{}
		name  string
		sql   string
	}{
		{&models.Motorcycle{}, "idx_motorcycles_status_created", "CREATE INDEX idx_motorcycles_status_created ON motorcycles(status, created_at)"},
		{&models.MotorcycleImage{}, "idx_motorcycle_images_order", "CREATE INDEX idx_motorcycle_images_order ON motorcycle_images(motorcycle_id, display_order)"},
		{&models.Lead{}, "idx_leads_motorcycle_name", "CREATE INDEX idx_leads_motorcycle_name ON leads(motorcycle_name)"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		if err := db.Exec(idx.sql).Error; err != nil {
			log.Warn("could not create index", zap.String("index", idx.name), zap.Error(err))
		}
	}
}
