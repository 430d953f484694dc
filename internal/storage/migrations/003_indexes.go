package migrations

import "gorm.io/gorm"

// migration003Up creates the indexes behind the admin listings and rsvpctl lookups
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_guest_passwords_created_at ON guest_passwords(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_guest_passwords_group ON guest_passwords(guest_group)",

		"CREATE INDEX IF NOT EXISTS idx_rsvp_submissions_submitted_at ON rsvp_submissions(submitted_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_rsvp_submissions_email ON rsvp_submissions(email)",
		"CREATE INDEX IF NOT EXISTS idx_rsvp_submissions_guest_name ON rsvp_submissions(guest_name)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops the indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_guest_passwords_created_at",
		"idx_guest_passwords_group",
		"idx_rsvp_submissions_submitted_at",
		"idx_rsvp_submissions_email",
		"idx_rsvp_submissions_guest_name",
	}

	for _, index := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + index).Error; err != nil {
			return err
		}
	}

	return nil
}
