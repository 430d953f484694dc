package migrations

import (
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/logger"
)

// Migration represents a database migration. Dialects restricts it to the
// named GORM dialectors; empty means every dialect.
type Migration struct {
	ID       string
	Name     string
	Dialects []string
	Up       func(*gorm.DB) error
	Down     func(*gorm.DB) error
}

// AppliesTo reports whether the migration runs on the given dialect
func (m Migration) AppliesTo(dialect string) bool {
	return len(m.Dialects) == 0 || slices.Contains(m.Dialects, dialect)
}

// AllModels returns the models owned by the core tables migration
func AllModels() []any {
	return []any{
		&guest.Credential{},
		&rsvp.Submission{},
	}
}

// GetMigrations returns all available migrations in order
func GetMigrations() []Migration {
	return []Migration{
		{
			ID:       "001",
			Name:     "create_extensions_and_types",
			Dialects: []string{"postgres"},
			Up:       migration001Up,
			Down:     migration001Down,
		},
		{
			ID:   "002",
			Name: "create_core_tables",
			Up:   migration002Up,
			Down: migration002Down,
		},
		{
			ID:   "003",
			Name: "create_indexes",
			Up:   migration003Up,
			Down: migration003Down,
		},
		{
			ID:       "004",
			Name:     "create_constraints_and_defaults",
			Dialects: []string{"postgres"},
			Up:       migration004Up,
			Down:     migration004Down,
		},
	}
}

// RunMigrations executes all pending migrations
func RunMigrations(db *gorm.DB) error {
	log := logger.Migration()
	dialect := db.Dialector.Name()

	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range GetMigrations() {
		if hasBeenRun(db, migration.ID) {
			log.Debug("Migration already applied, skipping", "id", migration.ID, "name", migration.Name)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if migration.AppliesTo(dialect) {
				log.Info("Running migration", "id", migration.ID, "name", migration.Name)
				if err := migration.Up(tx); err != nil {
					return fmt.Errorf("failed to run migration %s: %w", migration.ID, err)
				}
			} else {
				log.Debug("Migration not applicable to dialect, recording only", "id", migration.ID, "dialect", dialect)
			}

			return recordMigration(tx, migration.ID, migration.Name)
		})
		if err != nil {
			return err
		}

		log.Info("Successfully applied migration", "id", migration.ID)
	}

	log.Info("All migrations completed successfully")
	return nil
}

// AppliedMigrations returns the ids recorded in schema_migrations, oldest first
func AppliedMigrations(db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.Table("schema_migrations").Order("id").Pluck("id", &ids).Error
	return ids, err
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(db *gorm.DB) error {
	return db.Exec(`
        CREATE TABLE IF NOT EXISTS schema_migrations (
            id VARCHAR(10) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )
    `).Error
}

// hasBeenRun checks if a migration has already been applied
func hasBeenRun(db *gorm.DB, migrationID string) bool {
	var count int64
	db.Raw("SELECT COUNT(*) FROM schema_migrations WHERE id = ?", migrationID).Scan(&count)
	return count > 0
}

// recordMigration records that a migration has been applied
func recordMigration(db *gorm.DB, migrationID, name string) error {
	return db.Exec("INSERT INTO schema_migrations (id, name) VALUES (?, ?)", migrationID, name).Error
}

// RollbackMigration rolls back the last applied migration
func RollbackMigration(db *gorm.DB) error {
	log := logger.Migration()

	var lastMigration struct {
		ID   string
		Name string
	}

	err := db.Raw(`
        SELECT id, name FROM schema_migrations
        ORDER BY applied_at DESC, id DESC
        LIMIT 1
    `).Scan(&lastMigration).Error
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	if lastMigration.ID == "" {
		return fmt.Errorf("no migrations to rollback")
	}

	var target *Migration
	for _, migration := range GetMigrations() {
		if migration.ID == lastMigration.ID {
			target = &migration
			break
		}
	}

	if target == nil {
		return fmt.Errorf("migration %s not found", lastMigration.ID)
	}

	log.Info("Rolling back migration", "id", target.ID, "name", target.Name)

	err = db.Transaction(func(tx *gorm.DB) error {
		if target.AppliesTo(db.Dialector.Name()) {
			if err := target.Down(tx); err != nil {
				return fmt.Errorf("failed to rollback migration %s: %w", target.ID, err)
			}
		}

		return tx.Exec("DELETE FROM schema_migrations WHERE id = ?", target.ID).Error
	})
	if err != nil {
		return err
	}

	log.Info("Successfully rolled back migration", "id", target.ID)
	return nil
}
