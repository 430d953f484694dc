package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/logger"
)

// PostgresRSVPRepository implements RSVPRepository using GORM
type PostgresRSVPRepository struct {
	base
	log *log.Logger
}

// NewPostgresRSVPRepository creates an RSVP repository whose queries are bounded by timeout
func NewPostgresRSVPRepository(db *gorm.DB, timeout time.Duration) *PostgresRSVPRepository {
	return &PostgresRSVPRepository{
		base: base{db: db, timeout: timeout},
		log:  logger.Repository("rsvp"),
	}
}

// Create inserts the submission. The unique index on password turns a second
// submission for the same password into ErrDuplicate.
func (r *PostgresRSVPRepository) Create(ctx context.Context, submission *rsvp.Submission) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Create(submission).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, ErrDuplicate) {
			r.log.Warn("Submission already exists for password")
		} else {
			r.log.Error("Failed to create submission", "error", err)
		}
		return err
	}

	r.log.Info("Submission created", "id", submission.ID, "attendance", submission.Attendance)
	return nil
}

func (r *PostgresRSVPRepository) GetByPassword(ctx context.Context, password string) (*rsvp.Submission, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var submission rsvp.Submission
	if err := db.Where("password = ?", password).Take(&submission).Error; err != nil {
		return nil, translateError(err)
	}

	return &submission, nil
}

// GetAll returns every submission, newest first
func (r *PostgresRSVPRepository) GetAll(ctx context.Context) ([]*rsvp.Submission, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var submissions []*rsvp.Submission
	if err := db.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		err = translateError(err)
		r.log.Error("Failed to list submissions", "error", err)
		return nil, err
	}

	r.log.Debug("Listed submissions", "count", len(submissions))
	return submissions, nil
}

func (r *PostgresRSVPRepository) FindByEmail(ctx context.Context, email string) ([]*rsvp.Submission, error) {
	return r.findBy(ctx, "email", email)
}

func (r *PostgresRSVPRepository) FindByGuestName(ctx context.Context, name string) ([]*rsvp.Submission, error) {
	return r.findBy(ctx, "guest_name", name)
}

func (r *PostgresRSVPRepository) findBy(ctx context.Context, column, value string) ([]*rsvp.Submission, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var submissions []*rsvp.Submission
	if err := db.Where(column+" = ?", value).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, translateError(err)
	}
	return submissions, nil
}

// Delete removes one submission and reports whether a row existed
func (r *PostgresRSVPRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Delete(&rsvp.Submission{}, "id = ?", id)
	if result.Error != nil {
		err := translateError(result.Error)
		r.log.Error("Failed to delete submission", "id", id, "error", err)
		return false, err
	}

	r.log.Info("Submission deleted", "id", id, "rows", result.RowsAffected)
	return result.RowsAffected > 0, nil
}
