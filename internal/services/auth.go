package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/wedding-api/internal/domain/common"
	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

// AuthService resuelve contraseñas y sesiones a credenciales
type AuthService struct {
	guests   postgres.GuestRepository
	sessions *SessionManager
	log      *log.Logger
}

// NewAuthService crea una nueva instancia del servicio de autenticación
func NewAuthService(guests postgres.GuestRepository, sessions *SessionManager) *AuthService {
	return &AuthService{
		guests:   guests,
		sessions: sessions,
		log:      logger.Service("auth"),
	}
}

// LoginResult is a resolved credential plus its session token
type LoginResult struct {
	Credential *guest.Credential
	Token      string
	ExpiresAt  time.Time
}

// Caller carries whatever identification a request presented
type Caller struct {
	Password string
	Token    string
}

// Authenticate resolves a password to its credential. Lookup is exact and
// case-sensitive; it has no side effects.
func (s *AuthService) Authenticate(ctx context.Context, password string) (*guest.Credential, error) {
	if strings.TrimSpace(password) == "" {
		return nil, common.InvalidInput("Missing password")
	}

	c, err := s.guests.GetByPassword(ctx, password)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, common.Unauthorized("Invalid password")
		}
		s.log.Error("Password lookup failed", "error", err)
		return nil, common.StoreFailure("Authentication failed", err)
	}

	return c, nil
}

// Login authenticates and issues a session token
func (s *AuthService) Login(ctx context.Context, password string) (*LoginResult, error) {
	c, err := s.Authenticate(ctx, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(c)
	if err != nil {
		s.log.Error("Failed to issue session", "guest_id", c.ID, "error", err)
		return nil, common.StoreFailure("Authentication failed", err)
	}

	s.log.Info("Guest logged in", "guest_id", c.ID, "group", c.Group)
	return &LoginResult{Credential: c, Token: token, ExpiresAt: expiresAt}, nil
}

// VerifySession resolves a session token against the current credential
func (s *AuthService) VerifySession(ctx context.Context, token string) (*guest.Credential, error) {
	id, claims, err := s.sessions.Parse(token)
	if err != nil {
		s.log.Debug("Rejected session token", "error", err)
		return nil, common.Unauthorized("Invalid session")
	}

	c, err := s.guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, common.Unauthorized("Invalid session")
		}
		s.log.Error("Session lookup failed", "guest_id", id, "error", err)
		return nil, common.StoreFailure("Authentication failed", err)
	}

	if !s.sessions.Matches(claims, c) {
		s.log.Debug("Session fingerprint mismatch", "guest_id", id, "error", ErrStaleSession)
		return nil, common.Unauthorized("Invalid session")
	}

	return c, nil
}

// ResolveCaller identifies the caller; a token takes precedence over a password
func (s *AuthService) ResolveCaller(ctx context.Context, caller Caller) (*guest.Credential, error) {
	switch {
	case caller.Token != "":
		return s.VerifySession(ctx, caller.Token)
	case strings.TrimSpace(caller.Password) != "":
		return s.Authenticate(ctx, caller.Password)
	default:
		return nil, common.Unauthorized("Authentication required")
	}
}
