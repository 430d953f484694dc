package migrations

import "gorm.io/gorm"

// migration004Up adds server-side id defaults and party-size checks
func migration004Up(db *gorm.DB) error {
	statements := []string{
		"ALTER TABLE guest_passwords ALTER COLUMN id SET DEFAULT uuid_generate_v4()",
		"ALTER TABLE rsvp_submissions ALTER COLUMN id SET DEFAULT uuid_generate_v4()",
		"ALTER TABLE guest_passwords ALTER COLUMN created_at SET DEFAULT CURRENT_TIMESTAMP",
		"ALTER TABLE rsvp_submissions ALTER COLUMN submitted_at SET DEFAULT CURRENT_TIMESTAMP",
		"ALTER TABLE rsvp_submissions ALTER COLUMN guests SET DEFAULT 1",
		"ALTER TABLE rsvp_submissions ALTER COLUMN kids SET DEFAULT 0",
		`ALTER TABLE guest_passwords
            ADD CONSTRAINT chk_guest_passwords_password_not_blank CHECK (length(trim(password)) > 0)`,
		`ALTER TABLE rsvp_submissions
            ADD CONSTRAINT chk_rsvp_submissions_party_size CHECK (guests >= 0 AND kids >= 0)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration004Down removes the checks and defaults
func migration004Down(db *gorm.DB) error {
	statements := []string{
		"ALTER TABLE rsvp_submissions DROP CONSTRAINT IF EXISTS chk_rsvp_submissions_party_size",
		"ALTER TABLE guest_passwords DROP CONSTRAINT IF EXISTS chk_guest_passwords_password_not_blank",
		"ALTER TABLE rsvp_submissions ALTER COLUMN kids DROP DEFAULT",
		"ALTER TABLE rsvp_submissions ALTER COLUMN guests DROP DEFAULT",
		"ALTER TABLE rsvp_submissions ALTER COLUMN submitted_at DROP DEFAULT",
		"ALTER TABLE guest_passwords ALTER COLUMN created_at DROP DEFAULT",
		"ALTER TABLE rsvp_submissions ALTER COLUMN id DROP DEFAULT",
		"ALTER TABLE guest_passwords ALTER COLUMN id DROP DEFAULT",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
