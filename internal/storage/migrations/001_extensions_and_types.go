package migrations

import "gorm.io/gorm"

// migration001Up creates extensions and enum types
func migration001Up(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return err
	}

	if err := db.Exec(`
        CREATE TYPE guest_group AS ENUM (
            'friends',
            'family',
            'admin'
        )
    `).Error; err != nil {
		return err
	}

	if err := db.Exec(`
        CREATE TYPE rsvp_attendance AS ENUM (
            'yes',
            'no'
        )
    `).Error; err != nil {
		return err
	}

	return nil
}

// migration001Down drops the enum types
func migration001Down(db *gorm.DB) error {
	if err := db.Exec("DROP TYPE IF EXISTS rsvp_attendance CASCADE").Error; err != nil {
		return err
	}

	if err := db.Exec("DROP TYPE IF EXISTS guest_group CASCADE").Error; err != nil {
		return err
	}

	// uuid-ossp stays, other schemas on the server may use it
	return nil
}
