package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
	"github.com/gravadigital/wedding-api/internal/storage/storagetest"
)

func newSubmission(password, name, email string) *rsvp.Submission {
	return &rsvp.Submission{
		Password:   password,
		GuestName:  name,
		Email:      email,
		Phone:      "+30 210 0000000",
		Attendance: rsvp.AttendanceYes,
		Guests:     1,
	}
}

func TestRSVPRepositoryOnePerPassword(t *testing.T) {
	ctx := context.Background()
	repo := storagetest.NewContainer(t).RSVPs()

	first := newSubmission("maria2026", "Maria", "maria@example.com")
	require.NoError(t, repo.Create(ctx, first))
	assert.False(t, first.SubmittedAt.IsZero())

	err := repo.Create(ctx, newSubmission("maria2026", "Maria again", "maria@example.com"))
	assert.ErrorIs(t, err, postgres.ErrDuplicate)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Maria", all[0].GuestName)
}

func TestRSVPRepositoryGetAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := storagetest.NewContainer(t).RSVPs()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, pw := range []string{"a", "b", "c"} {
		s := newSubmission(pw, pw, pw+"@example.com")
		s.SubmittedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, s))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Password)
	assert.Equal(t, "a", all[2].Password)
}

func TestRSVPRepositoryFindAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := storagetest.NewContainer(t).RSVPs()

	maria := newSubmission("maria2026", "Maria", "shared@example.com")
	sofia := newSubmission("sofia2026", "Sofia", "shared@example.com")
	require.NoError(t, repo.Create(ctx, maria))
	require.NoError(t, repo.Create(ctx, sofia))

	byEmail, err := repo.FindByEmail(ctx, "shared@example.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	byName, err := repo.FindByGuestName(ctx, "Sofia")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, sofia.ID, byName[0].ID)

	deleted, err := repo.Delete(ctx, maria.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByPassword(ctx, "maria2026")
	assert.ErrorIs(t, err, postgres.ErrNotFound)
}

func TestRSVPRepositoryHonoursContextDeadline(t *testing.T) {
	repo := storagetest.NewContainer(t).RSVPs()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAll(ctx)
	assert.Error(t, err)
}
