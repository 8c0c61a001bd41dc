package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"accountportal/internal/config"
)

func Connect(c *config.Config) (*gorm.DB, error) {
	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey,
	// which the registration workflow relies on to close the check-then-insert
	// race on email and phone.
	db, err := gorm.Open(postgres.Open(c.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}
