package db

import (
	"kickboard_ledger/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to MySQL with unique-key errors translated to gorm.ErrDuplicatedKey
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// emailBinaryDDL makes email comparisons exact, so lookups, uniqueness and cache keys agree on case
const emailBinaryDDL = "ALTER TABLE `users` MODIFY `email` VARCHAR(320) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create the accounts table, its columns and the unique email index
	if err := db.AutoMigrate(&domain.Account{}); err != nil {
		return err
	}
	if err := binaryEmail(db); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// binaryEmail replaces MySQL's case-insensitive default collation on the email column
func binaryEmail(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil // Other stores already compare bytes
	}
	return db.Exec(emailBinaryDDL).Error
}
