package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"status-backend/config"
	"status-backend/internal/model"
)

// Init opens the configured database, runs migrations and makes sure the
// singleton rows exist.
func Init(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dial = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dial = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.StatusState{},
		&model.Device{},
		&model.Metric{},
		&model.MetricsMeta{},
		&model.Plugin{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if err := seed(db); err != nil {
		return nil, fmt.Errorf("seeding failed: %w", err)
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// seed creates the StatusState and MetricsMeta rows on first boot. Empty
// MetricsMeta markers make the first rollover initialize them.
func seed(db *gorm.DB) error {
	var st model.StatusState
	err := db.Take(&st, "id = ?", model.StateRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[db] status state row missing, creating")
		st = model.StatusState{ID: model.StateRowID, LastUpdated: time.Now()}
		if err := db.Create(&st).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var meta model.MetricsMeta
	err = db.Take(&meta, "id = ?", model.MetaRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[db] metrics meta row missing, creating")
		meta = model.MetricsMeta{ID: model.MetaRowID}
		if err := db.Create(&meta).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}
