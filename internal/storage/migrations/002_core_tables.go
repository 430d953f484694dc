package migrations

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// migration002Up creates the credential and submission tables
func migration002Up(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// migration002Down drops the core tables
func migration002Down(db *gorm.DB) error {
	tables := []string{
		"rsvp_submissions",
		"guest_passwords",
	}

	suffix := ""
	if db.Dialector.Name() == "postgres" {
		suffix = " CASCADE"
	}

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table) + suffix).Error; err != nil {
			return err
		}
	}

	return nil
}
