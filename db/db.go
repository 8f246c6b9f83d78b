package db

import (
	"fmt"

	"github.com/meinhoongagan/household-services/config"
	"github.com/meinhoongagan/household-services/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for the configured backend.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// Open connects to the database. The handle is passed explicitly to every
// service; there is no package-level connection.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	utils.Log.WithField("driver", cfg.DBDriver).Info("database connection established")
	return conn, nil
}
