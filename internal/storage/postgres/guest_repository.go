package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/logger"
)

// PostgresGuestRepository implements GuestRepository using GORM
type PostgresGuestRepository struct {
	base
	log *log.Logger
}

// NewPostgresGuestRepository creates a guest repository whose queries are bounded by timeout
func NewPostgresGuestRepository(db *gorm.DB, timeout time.Duration) *PostgresGuestRepository {
	return &PostgresGuestRepository{
		base: base{db: db, timeout: timeout},
		log:  logger.Repository("guest"),
	}
}

func (r *PostgresGuestRepository) Create(ctx context.Context, credential *guest.Credential) error {
	r.log.Debug("Creating guest credential", "group", credential.Group)

	if err := credential.Validate(); err != nil {
		return fmt.Errorf("credential validation failed: %w", err)
	}

	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Create(credential).Error; err != nil {
		err = translateError(err)
		r.log.Error("Failed to create guest credential", "error", err)
		return err
	}

	r.log.Info("Guest credential created", "id", credential.ID, "group", credential.Group)
	return nil
}

// CreateIfAbsent inserts the credentials whose password is not taken yet and
// returns how many rows were written.
func (r *PostgresGuestRepository) CreateIfAbsent(ctx context.Context, credentials []*guest.Credential) (int64, error) {
	if len(credentials) == 0 {
		return 0, nil
	}

	for _, c := range credentials {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("credential validation failed: %w", err)
		}
	}

	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "password"}},
		DoNothing: true,
	}).Create(credentials)
	if result.Error != nil {
		err := translateError(result.Error)
		r.log.Error("Failed to seed guest credentials", "error", err)
		return 0, err
	}

	r.log.Info("Seeded guest credentials", "requested", len(credentials), "inserted", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *PostgresGuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*guest.Credential, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var credential guest.Credential
	if err := db.First(&credential, "id = ?", id).Error; err != nil {
		err = translateError(err)
		r.log.Debug("Guest credential lookup by id failed", "id", id, "error", err)
		return nil, err
	}

	return &credential, nil
}

func (r *PostgresGuestRepository) GetByPassword(ctx context.Context, password string) (*guest.Credential, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var credential guest.Credential
	if err := db.Where("password = ?", password).Take(&credential).Error; err != nil {
		err = translateError(err)
		r.log.Debug("Guest credential lookup by password failed", "error", err)
		return nil, err
	}

	return &credential, nil
}

// GetAll returns every credential, newest first
func (r *PostgresGuestRepository) GetAll(ctx context.Context) ([]*guest.Credential, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var credentials []*guest.Credential
	if err := db.Order("created_at DESC").Find(&credentials).Error; err != nil {
		err = translateError(err)
		r.log.Error("Failed to list guest credentials", "error", err)
		return nil, err
	}

	r.log.Debug("Listed guest credentials", "count", len(credentials))
	return credentials, nil
}

// Update merges patch into the credential. A password change is carried over
// to the credential's submission in the same transaction.
func (r *PostgresGuestRepository) Update(ctx context.Context, id uuid.UUID, patch guest.Patch) (*guest.Credential, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var credential guest.Credential
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&credential, "id = ?", id).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}

		previous := credential.Password
		patch.Apply(&credential)
		if err := credential.Validate(); err != nil {
			return fmt.Errorf("credential validation failed: %w", err)
		}

		if err := tx.Save(&credential).Error; err != nil {
			return err
		}

		if credential.Password != previous {
			moved := tx.Model(&rsvp.Submission{}).
				Where("password = ?", previous).
				Update("password", credential.Password)
			if moved.Error != nil {
				if errors.Is(translateError(moved.Error), ErrDuplicate) {
					return fmt.Errorf("%w: %w", ErrSubmissionExists, moved.Error)
				}
				return moved.Error
			}
			r.log.Debug("Moved submission to new password", "id", id, "rows", moved.RowsAffected)
		}

		return nil
	})
	if err != nil {
		err = translateError(err)
		r.log.Error("Failed to update guest credential", "id", id, "error", err)
		return nil, err
	}

	r.log.Info("Guest credential updated", "id", id, "group", credential.Group)
	return &credential, nil
}

// Delete removes the credential; deleting an unknown id is not an error
func (r *PostgresGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Delete(&guest.Credential{}, "id = ?", id)
	if result.Error != nil {
		err := translateError(result.Error)
		r.log.Error("Failed to delete guest credential", "id", id, "error", err)
		return err
	}

	r.log.Info("Guest credential deleted", "id", id, "rows", result.RowsAffected)
	return nil
}

func (r *PostgresGuestRepository) CountNonAdmin(ctx context.Context) (int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&guest.Credential{}).Where("guest_group <> ?", guest.GroupAdmin).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
