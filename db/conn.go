// Package db contains things related to the relational store
package db

import (
	"fmt"

	"bitwise74/account-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by db.driver and migrates the user
// table. TranslateError is on so unique constraint violations surface
// as gorm.ErrDuplicatedKey on both drivers, which the handlers rely on
// as the authoritative uniqueness guard.
func New() (*gorm.DB, error) {
	dsn := viper.GetString("db.dsn")

	var dialector gorm.Dialector
	switch viper.GetString("db.driver") {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
