// Package db opens the MySQL store backing accounts, messages and votes.
package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL connects to the DSN and returns a GORM handle. TranslateError
// turns driver duplicate-entry failures into gorm.ErrDuplicatedKey, which
// the services map onto their conflict responses when a unique index wins
// a race the pre-insert lookup missed.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
