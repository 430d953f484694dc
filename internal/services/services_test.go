package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
	"github.com/gravadigital/wedding-api/internal/storage/storagetest"
)

const testSecret = "test-session-secret"

type fixture struct {
	repos    postgres.RepositoryContainer
	sessions *SessionManager
	archive  *memoryArchive
	svc      *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := storagetest.NewContainer(t)
	sessions := NewSessionManager(testSecret, time.Hour)
	archive := &memoryArchive{objects: map[string][]byte{}}
	return &fixture{
		repos:    repos,
		sessions: sessions,
		archive:  archive,
		svc:      New(repos, sessions, archive),
	}
}

func (f *fixture) seed(t *testing.T, password, name string, group guest.Group) *guest.Credential {
	t.Helper()
	c := guest.NewCredential(password, name, group)
	require.NoError(t, f.repos.Guests().Create(context.Background(), c))
	return c
}

type memoryArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryArchive) Upload(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryArchive) PresignGet(_ context.Context, key string) (string, error) {
	return "https://minio.test/wedding-exports/" + key + "?X-Amz-Signature=test", nil
}

// untouched repositories panic on any call, proving a code path never reached the store
type untouchedGuests struct{ postgres.GuestRepository }
type untouchedRSVPs struct{ postgres.RSVPRepository }
