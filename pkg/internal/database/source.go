package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type Config struct {
	Driver string
	Dsn    string
	Prefix string
	Debug  bool
}

// NewGorm opens the database described by the settings file.
func NewGorm() (*gorm.DB, error) {
	return Open(Config{
		Driver: viper.GetString("database.driver"),
		Dsn:    viper.GetString("database.dsn"),
		Prefix: viper.GetString("database.prefix"),
		Debug:  viper.GetBool("debug.database"),
	})
}

func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.Dsn)
	case DriverSqlite:
		dialector = sqlite.Open(cfg.Dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: cfg.Prefix,
		},
		TranslateError: true,
		Logger: logger.New(&log.Logger, logger.Config{
			Colorful:                  true,
			IgnoreRecordNotFoundError: true,
			LogLevel:                  lo.Ternary(cfg.Debug, logger.Info, logger.Silent),
		}),
	})
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer, keep every statement on one connection
	if cfg.Driver == DriverSqlite {
		if raw, err := db.DB(); err == nil {
			raw.SetMaxOpenConns(1)
		}
	}

	return db, nil
}
