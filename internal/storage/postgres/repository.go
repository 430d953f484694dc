package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
)

// GuestRepository define los métodos para interactuar con las credenciales de invitados
type GuestRepository interface {
	Create(ctx context.Context, credential *guest.Credential) error
	CreateIfAbsent(ctx context.Context, credentials []*guest.Credential) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*guest.Credential, error)
	GetByPassword(ctx context.Context, password string) (*guest.Credential, error)
	GetAll(ctx context.Context) ([]*guest.Credential, error)
	Update(ctx context.Context, id uuid.UUID, patch guest.Patch) (*guest.Credential, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountNonAdmin(ctx context.Context) (int64, error)
}

// RSVPRepository define los métodos para interactuar con las confirmaciones
type RSVPRepository interface {
	Create(ctx context.Context, submission *rsvp.Submission) error
	GetByPassword(ctx context.Context, password string) (*rsvp.Submission, error)
	GetAll(ctx context.Context) ([]*rsvp.Submission, error)
	FindByEmail(ctx context.Context, email string) ([]*rsvp.Submission, error)
	FindByGuestName(ctx context.Context, name string) ([]*rsvp.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// base carries the connection and the per-query timeout shared by repositories
type base struct {
	db      *gorm.DB
	timeout time.Duration
}

// conn returns a session bound to ctx with the query timeout applied
func (b base) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.timeout <= 0 {
		return b.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	return b.db.WithContext(ctx), cancel
}
