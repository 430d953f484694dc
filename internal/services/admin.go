package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/wedding-api/internal/domain/common"
	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/storage/objectstore"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
	"github.com/gravadigital/wedding-api/internal/validation"
)

// CSVHeader is the first row of every RSVP export
var CSVHeader = []string{
	"submitted_at", "guest_name", "email", "phone", "attendance", "guests", "kids", "message", "password",
}

// AdminService maneja las operaciones del panel de administración. Every
// operation takes the resolved actor and refuses non-admins before touching
// the store.
type AdminService struct {
	guests    postgres.GuestRepository
	rsvps     postgres.RSVPRepository
	auth      *AuthService
	archive   objectstore.Store
	validator validation.GuestValidation
	log       *log.Logger
	now       func() time.Time
}

// NewAdminService crea el servicio; archive may be nil when no bucket is configured
func NewAdminService(guests postgres.GuestRepository, rsvps postgres.RSVPRepository, auth *AuthService, archive objectstore.Store) *AdminService {
	return &AdminService{
		guests:    guests,
		rsvps:     rsvps,
		auth:      auth,
		archive:   archive,
		validator: validation.GuestValidation{},
		log:       logger.Service("admin"),
		now:       time.Now,
	}
}

// CreateGuestRequest representa una solicitud para crear una credencial
type CreateGuestRequest struct {
	Password   string
	GuestName  *string
	GuestGroup string
}

// UpdateGuestRequest is a partial update; unset options leave fields unchanged
type UpdateGuestRequest struct {
	ID         string
	Password   common.Option[string]
	GuestName  common.Option[*string]
	GuestGroup common.Option[string]
}

// Archive describes an uploaded export
type Archive struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

// Authorize resolves the caller and requires the admin group. Any failure to
// identify the caller is reported as Forbidden.
func (s *AdminService) Authorize(ctx context.Context, caller Caller) (*guest.Credential, error) {
	actor, err := s.auth.ResolveCaller(ctx, caller)
	if err != nil {
		if common.KindOf(err) == common.KindStoreFailure {
			return nil, err
		}
		return nil, common.Forbidden()
	}
	if err := requireAdmin(actor); err != nil {
		s.log.Warn("Non-admin rejected", "guest_id", actor.ID, "group", actor.Group)
		return nil, err
	}
	return actor, nil
}

func requireAdmin(actor *guest.Credential) error {
	if actor == nil || !actor.Group.IsAdmin() {
		return common.Forbidden()
	}
	return nil
}

// ListGuests returns every credential, newest first
func (s *AdminService) ListGuests(ctx context.Context, actor *guest.Credential) ([]*guest.Credential, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	guests, err := s.guests.GetAll(ctx)
	if err != nil {
		s.log.Error("Failed to list guests", "error", err)
		return nil, common.StoreFailure("Failed to fetch guests", err)
	}
	return guests, nil
}

// CreateGuest adds a credential
func (s *AdminService) CreateGuest(ctx context.Context, actor *guest.Credential, req CreateGuestRequest) (*guest.Credential, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if err := s.validator.ValidatePassword(req.Password); err != nil {
		return nil, common.InvalidInput("Missing required fields")
	}
	if err := validation.ValidateRequired(req.GuestGroup, "guest_group"); err != nil {
		return nil, common.InvalidInput("Missing required fields")
	}
	group, err := s.validator.ValidateGroup(req.GuestGroup)
	if err != nil {
		return nil, common.InvalidInput("Invalid guest_group")
	}
	if err := s.validator.ValidateGuestName(req.GuestName); err != nil {
		return nil, common.InvalidInput(err.Error())
	}

	name := ""
	if req.GuestName != nil {
		name = *req.GuestName
	}
	credential := guest.NewCredential(req.Password, name, group)

	if err := s.guests.Create(ctx, credential); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, common.Conflict("Password already exists")
		}
		s.log.Error("Failed to create guest", "error", err)
		return nil, common.StoreFailure("Failed to create guest", err)
	}

	s.log.Info("Guest created", "guest_id", credential.ID, "group", credential.Group, "by", actor.ID)
	return credential, nil
}

// UpdateGuest applies a partial update to one credential
func (s *AdminService) UpdateGuest(ctx context.Context, actor *guest.Credential, req UpdateGuestRequest) (*guest.Credential, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if err := validation.ValidateRequired(req.ID, "id"); err != nil {
		return nil, common.InvalidInput("Missing id")
	}
	id, err := validation.ValidateUUID(req.ID, "id")
	if err != nil {
		return nil, common.InvalidInput("Invalid id")
	}

	var patch guest.Patch
	if pw, ok := req.Password.Get(); ok {
		if err := s.validator.ValidatePassword(pw); err != nil {
			return nil, common.InvalidInput("password cannot be empty")
		}
		patch.Password = common.Some(pw)
	}
	if raw, ok := req.GuestGroup.Get(); ok {
		group, err := s.validator.ValidateGroup(raw)
		if err != nil {
			return nil, common.InvalidInput("Invalid guest_group")
		}
		patch.Group = common.Some(group)
	}
	if name, ok := req.GuestName.Get(); ok {
		if err := s.validator.ValidateGuestName(name); err != nil {
			return nil, common.InvalidInput(err.Error())
		}
		patch.GuestName = common.Some(name)
	}

	updated, err := s.guests.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			return nil, common.NotFound("Guest not found")
		case errors.Is(err, postgres.ErrSubmissionExists):
			return nil, common.Conflict("An RSVP already exists for this password")
		case errors.Is(err, postgres.ErrDuplicate):
			return nil, common.Conflict("Password already exists")
		}
		s.log.Error("Failed to update guest", "guest_id", id, "error", err)
		return nil, common.StoreFailure("Failed to update guest", err)
	}

	s.log.Info("Guest updated", "guest_id", id, "by", actor.ID)
	return updated, nil
}

// DeleteGuest removes a credential; deleting an absent id succeeds
func (s *AdminService) DeleteGuest(ctx context.Context, actor *guest.Credential, rawID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := validation.ValidateRequired(rawID, "id"); err != nil {
		return common.InvalidInput("Missing id")
	}
	id, err := validation.ValidateUUID(rawID, "id")
	if err != nil {
		return common.InvalidInput("Invalid id")
	}

	if err := s.guests.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete guest", "guest_id", id, "error", err)
		return common.StoreFailure("Failed to delete guest", err)
	}

	s.log.Info("Guest deleted", "guest_id", id, "by", actor.ID)
	return nil
}

// ListRSVPs returns every submission, newest first
func (s *AdminService) ListRSVPs(ctx context.Context, actor *guest.Credential) ([]*rsvp.Submission, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	subs, err := s.rsvps.GetAll(ctx)
	if err != nil {
		s.log.Error("Failed to list RSVPs", "error", err)
		return nil, common.StoreFailure("Failed to fetch RSVPs", err)
	}
	return subs, nil
}

// Stats computes the admin panel totals
func (s *AdminService) Stats(ctx context.Context, actor *guest.Credential) (rsvp.Summary, error) {
	subs, err := s.ListRSVPs(ctx, actor)
	if err != nil {
		return rsvp.Summary{}, err
	}

	count, err := s.guests.CountNonAdmin(ctx)
	if err != nil {
		s.log.Error("Failed to count guests", "error", err)
		return rsvp.Summary{}, common.StoreFailure("Failed to compute stats", err)
	}

	return rsvp.Summarize(subs, count), nil
}

// ExportRSVPs writes every submission as CSV and returns the row count
func (s *AdminService) ExportRSVPs(ctx context.Context, actor *guest.Credential, w io.Writer) (int, error) {
	subs, err := s.ListRSVPs(ctx, actor)
	if err != nil {
		return 0, err
	}

	if err := writeCSV(w, subs); err != nil {
		s.log.Error("Failed to write export", "error", err)
		return 0, common.StoreFailure("Failed to export RSVPs", err)
	}
	return len(subs), nil
}

// ArchiveRSVPs uploads a CSV export to the object store
func (s *AdminService) ArchiveRSVPs(ctx context.Context, actor *guest.Credential) (*Archive, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if s.archive == nil {
		return nil, common.Unavailable("Object storage is not configured")
	}

	var buf bytes.Buffer
	rows, err := s.ExportRSVPs(ctx, actor, &buf)
	if err != nil {
		return nil, err
	}

	key := objectstore.ArchiveKey(s.now())
	if err := s.archive.Upload(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		s.log.Error("Archive upload failed", "key", key, "error", err)
		return nil, common.StoreFailure("Failed to archive RSVPs", err)
	}

	url, err := s.archive.PresignGet(ctx, key)
	if err != nil {
		s.log.Error("Archive presign failed", "key", key, "error", err)
		return nil, common.StoreFailure("Failed to archive RSVPs", err)
	}

	s.log.Info("RSVPs archived", "key", key, "rows", rows, "by", actor.ID)
	return &Archive{Key: key, URL: url, Rows: rows}, nil
}

func writeCSV(w io.Writer, subs []*rsvp.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, sub := range subs {
		message := ""
		if sub.Message != nil {
			message = *sub.Message
		}
		record := []string{
			sub.SubmittedAt.UTC().Format(time.RFC3339),
			sub.GuestName,
			sub.Email,
			sub.Phone,
			string(sub.Attendance),
			strconv.Itoa(sub.Guests),
			strconv.Itoa(sub.Kids),
			message,
			sub.Password,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
