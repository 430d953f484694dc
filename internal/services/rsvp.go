package services

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/wedding-api/internal/domain/common"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
	"github.com/gravadigital/wedding-api/internal/validation"
)

// RSVPService maneja la lógica de negocio de las confirmaciones
type RSVPService struct {
	guests    postgres.GuestRepository
	rsvps     postgres.RSVPRepository
	validator validation.RSVPValidation
	log       *log.Logger
}

// NewRSVPService crea una nueva instancia del servicio de confirmaciones
func NewRSVPService(guests postgres.GuestRepository, rsvps postgres.RSVPRepository) *RSVPService {
	return &RSVPService{
		guests:    guests,
		rsvps:     rsvps,
		validator: validation.RSVPValidation{},
		log:       logger.Service("rsvp"),
	}
}

// SubmitRequest is a raw RSVP form. Guests and Kids are kept as text and
// coerced on submit.
type SubmitRequest struct {
	Password   string
	Name       string
	Email      string
	Phone      string
	Attendance string
	Guests     string
	Kids       string
	Message    string
}

// Submit records the single RSVP allowed for a password
func (s *RSVPService) Submit(ctx context.Context, req SubmitRequest) (*rsvp.Submission, error) {
	if err := validation.ValidateRequired(req.Password, "password"); err != nil {
		return nil, common.InvalidInput(err.Error())
	}
	if err := s.validator.ValidateContact(req.Name, req.Email, req.Phone); err != nil {
		return nil, common.InvalidInput(err.Error())
	}
	attendance, err := s.validator.ValidateAttendance(req.Attendance)
	if err != nil {
		return nil, common.InvalidInput(err.Error())
	}
	if err := s.validator.ValidateMessage(req.Message); err != nil {
		return nil, common.InvalidInput(err.Error())
	}

	if _, err := s.guests.GetByPassword(ctx, req.Password); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, common.Unauthorized("Invalid password")
		}
		s.log.Error("Password lookup failed", "error", err)
		return nil, common.StoreFailure("Failed to submit", err)
	}

	submission := &rsvp.Submission{
		Password:   req.Password,
		GuestName:  strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Attendance: attendance,
		Guests:     rsvp.ParseCount(req.Guests, rsvp.DefaultGuests),
		Kids:       rsvp.ParseCount(req.Kids, rsvp.DefaultKids),
	}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		submission.Message = &msg
	}

	if err := s.rsvps.Create(ctx, submission); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, common.Conflict("RSVP already submitted")
		}
		s.log.Error("Failed to store RSVP", "error", err)
		return nil, common.StoreFailure("Failed to submit", err)
	}

	s.log.Info("RSVP submitted", "rsvp_id", submission.ID, "attendance", submission.Attendance,
		"guests", submission.Guests, "kids", submission.Kids)
	return submission, nil
}

// CheckStatus reports whether the password already has a submission. It does
// not reveal whether the password is a valid credential.
func (s *RSVPService) CheckStatus(ctx context.Context, password string) (rsvp.Status, error) {
	if strings.TrimSpace(password) == "" {
		return rsvp.Status{}, common.InvalidInput("Missing password")
	}

	sub, err := s.rsvps.GetByPassword(ctx, password)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return rsvp.Status{Submitted: false}, nil
		}
		s.log.Error("Status lookup failed", "error", err)
		return rsvp.Status{}, common.StoreFailure("Failed to check status", err)
	}

	at := sub.SubmittedAt
	return rsvp.Status{Submitted: true, SubmittedAt: &at}, nil
}
