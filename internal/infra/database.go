package infra

import (
	"fmt"
	"time"

	"florexport/migrations"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection and applies the embedded SQL
// migrations. TranslateError makes unique violations surface as
// gorm.ErrDuplicatedKey, which code assignment relies on to retry.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := migrations.Up(sqlDB); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}
