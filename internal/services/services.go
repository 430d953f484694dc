package services

import (
	"github.com/gravadigital/wedding-api/internal/storage/objectstore"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

// Services agrupa los servicios que consumen los handlers
type Services struct {
	Auth  *AuthService
	RSVP  *RSVPService
	Admin *AdminService
}

// New wires every service over the repository container. archive may be nil.
func New(repos postgres.RepositoryContainer, sessions *SessionManager, archive objectstore.Store) *Services {
	auth := NewAuthService(repos.Guests(), sessions)
	return &Services{
		Auth:  auth,
		RSVP:  NewRSVPService(repos.Guests(), repos.RSVPs()),
		Admin: NewAdminService(repos.Guests(), repos.RSVPs(), auth, archive),
	}
}
