package services

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrStaleSession   = errors.New("session no longer matches credential")
)

// SessionClaims are the claims carried by a session token
type SessionClaims struct {
	Group       guest.Group `json:"grp"`
	Fingerprint string      `json:"fp"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies stateless session tokens. A token is
// bound to the credential's current password through a keyed fingerprint,
// so changing or deleting the password invalidates it.
type SessionManager struct {
	secret []byte
	fpKey  [32]byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager crea un gestor de sesiones
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		fpKey:  blake2b.Sum256([]byte("fingerprint:" + secret)),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for c and returns it with its expiry
func (m *SessionManager) Issue(c *guest.Credential) (string, time.Time, error) {
	now := m.now()
	claims := SessionClaims{
		Group:       c.Group,
		Fingerprint: m.fingerprint(c.Password),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Parse checks signature and expiry and returns the subject id with the claims
func (m *SessionManager) Parse(token string) (uuid.UUID, *SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}
	return id, claims, nil
}

// Matches reports whether claims were issued for the credential as it is now
func (m *SessionManager) Matches(claims *SessionClaims, c *guest.Credential) bool {
	want := m.fingerprint(c.Password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(claims.Fingerprint)) == 1
}

func (m *SessionManager) fingerprint(password string) string {
	h, _ := blake2b.New256(m.fpKey[:])
	h.Write([]byte(password))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
