package database

import (
	"fmt"

	"omanvat/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the PostgreSQL pool and migrates the localization tables.
// Constraint violations are translated to gorm's error values (gorm.ErrDuplicatedKey, ...).
func NewConnection(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Company{},
		&model.OmanVATSetting{},
		&model.OmanVATAccount{},
		&model.CustomField{},
		&model.DocPerm{},
		&model.Report{},
		&model.Account{},
		&model.TaxCategory{},
		&model.TaxesAndChargesTemplate{},
		&model.TaxesAndChargesRow{},
		&model.ItemTaxTemplate{},
		&model.ItemTaxTemplateRow{},
		&model.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
