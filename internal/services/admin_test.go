package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/domain/common"
	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
)

func strPtr(s string) *string { return &s }

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "root-pass", "Admin", guest.GroupAdmin)
	f.seed(t, "maria2026", "Maria", guest.GroupFamily)

	actor, err := f.svc.Admin.Authorize(ctx, Caller{Password: "root-pass"})
	require.NoError(t, err)
	assert.True(t, actor.Group.IsAdmin())

	for name, caller := range map[string]Caller{
		"family member": {Password: "maria2026"},
		"unknown":       {Password: "nope"},
		"anonymous":     {},
		"bad token":     {Token: "not-a-jwt"},
	} {
		_, err := f.svc.Admin.Authorize(ctx, caller)
		assert.ErrorIs(t, err, common.ErrForbidden, name)
	}
}

func TestAdminOperationsRejectNonAdminsWithoutStoreAccess(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminService(untouchedGuests{}, untouchedRSVPs{}, nil, nil)
	friend := guest.NewCredential("friend", "", guest.GroupFriends)

	checks := map[string]func(*guest.Credential) error{
		"list guests": func(a *guest.Credential) error { _, err := svc.ListGuests(ctx, a); return err },
		"create guest": func(a *guest.Credential) error {
			_, err := svc.CreateGuest(ctx, a, CreateGuestRequest{Password: "x", GuestGroup: "admin"})
			return err
		},
		"update guest": func(a *guest.Credential) error {
			_, err := svc.UpdateGuest(ctx, a, UpdateGuestRequest{ID: uuid.NewString(), GuestGroup: common.Some("admin")})
			return err
		},
		"delete guest": func(a *guest.Credential) error { return svc.DeleteGuest(ctx, a, uuid.NewString()) },
		"list rsvps":   func(a *guest.Credential) error { _, err := svc.ListRSVPs(ctx, a); return err },
		"stats":        func(a *guest.Credential) error { _, err := svc.Stats(ctx, a); return err },
		"export": func(a *guest.Credential) error {
			_, err := svc.ExportRSVPs(ctx, a, &bytes.Buffer{})
			return err
		},
		"archive": func(a *guest.Credential) error { _, err := svc.ArchiveRSVPs(ctx, a); return err },
	}

	for name, call := range checks {
		assert.ErrorIs(t, call(friend), common.ErrForbidden, name)
		assert.ErrorIs(t, call(nil), common.ErrForbidden, name)
	}
}

func TestCreateGuest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)

	created, err := f.svc.Admin.CreateGuest(ctx, admin, CreateGuestRequest{
		Password: "sofia2026", GuestName: strPtr("Sofia"), GuestGroup: "friends",
	})
	require.NoError(t, err)
	assert.Equal(t, guest.GroupFriends, created.Group)

	_, err = f.svc.Admin.CreateGuest(ctx, admin, CreateGuestRequest{Password: "sofia2026", GuestGroup: "family"})
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = f.svc.Admin.CreateGuest(ctx, admin, CreateGuestRequest{Password: "x", GuestGroup: "cousins"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, "Invalid guest_group", common.PublicMessage(err))

	_, err = f.svc.Admin.CreateGuest(ctx, admin, CreateGuestRequest{GuestGroup: "friends"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	all, err := f.svc.Admin.ListGuests(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateGuest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)
	maria := f.seed(t, "maria2026", "Maria", guest.GroupFamily)

	updated, err := f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{
		ID:         maria.ID.String(),
		GuestGroup: common.Some("friends"),
	})
	require.NoError(t, err)
	assert.Equal(t, guest.GroupFriends, updated.Group)
	assert.Equal(t, "maria2026", updated.Password, "unset fields stay unchanged")
	assert.Equal(t, "Maria", updated.DisplayName())

	updated, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{
		ID:        maria.ID.String(),
		GuestName: common.Some[*string](nil),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.GuestName)

	_, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{
		ID:       maria.ID.String(),
		Password: common.Some("root-pass"),
	})
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{ID: uuid.NewString(), Password: common.Some("new")})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{ID: "", Password: common.Some("new")})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{ID: maria.ID.String(), GuestGroup: common.Some("royalty")})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{ID: maria.ID.String(), Password: common.Some("")})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdateGuestPasswordCarriesRSVP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)
	maria := f.seed(t, "maria2026", "Maria", guest.GroupFamily)

	_, err := f.svc.RSVP.Submit(ctx, validSubmit("maria2026"))
	require.NoError(t, err)

	_, err = f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{ID: maria.ID.String(), Password: common.Some("maria-2027")})
	require.NoError(t, err)

	status, err := f.svc.RSVP.CheckStatus(ctx, "maria-2027")
	require.NoError(t, err)
	assert.True(t, status.Submitted)

	_, err = f.svc.RSVP.Submit(ctx, validSubmit("maria-2027"))
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestUpdateGuestPasswordOntoLeftoverRSVP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)
	maria := f.seed(t, "maria2026", "Maria", guest.GroupFamily)
	sofia := f.seed(t, "sofia2026", "Sofia", guest.GroupFriends)

	for _, pw := range []string{"maria2026", "sofia2026"} {
		_, err := f.svc.RSVP.Submit(ctx, validSubmit(pw))
		require.NoError(t, err)
	}
	require.NoError(t, f.svc.Admin.DeleteGuest(ctx, admin, sofia.ID.String()))

	_, err := f.svc.Admin.UpdateGuest(ctx, admin, UpdateGuestRequest{ID: maria.ID.String(), Password: common.Some("sofia2026")})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "An RSVP already exists for this password", common.PublicMessage(err))
}

func TestDeleteGuest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)
	maria := f.seed(t, "maria2026", "Maria", guest.GroupFamily)

	require.NoError(t, f.svc.Admin.DeleteGuest(ctx, admin, maria.ID.String()))
	require.NoError(t, f.svc.Admin.DeleteGuest(ctx, admin, maria.ID.String()), "absent id is still an ack")

	_, err := f.svc.Auth.Authenticate(ctx, "maria2026")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	assert.ErrorIs(t, f.svc.Admin.DeleteGuest(ctx, admin, ""), common.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.Admin.DeleteGuest(ctx, admin, "42"), common.ErrInvalidInput)
}

func TestStatsExportAndArchive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)
	f.seed(t, "maria2026", "Maria", guest.GroupFamily)
	f.seed(t, "sofia2026", "Sofia", guest.GroupFriends)
	f.seed(t, "nikos2026", "Nikos", guest.GroupFriends)

	yes := validSubmit("maria2026")
	yes.Guests, yes.Kids = "2", "1"
	_, err := f.svc.RSVP.Submit(ctx, yes)
	require.NoError(t, err)

	no := validSubmit("sofia2026")
	no.Name, no.Attendance, no.Guests = "Sofia", "no", "3"
	_, err = f.svc.RSVP.Submit(ctx, no)
	require.NoError(t, err)

	stats, err := f.svc.Admin.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, rsvp.Summary{TotalGuests: 3, TotalRSVPs: 2, Attending: 1, TotalAttendees: 3, Declined: 1}, stats)

	var buf bytes.Buffer
	rows, err := f.svc.Admin.ExportRSVPs(ctx, admin, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, CSVHeader, records[0])

	f.svc.Admin.now = func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) }
	archive, err := f.svc.Admin.ArchiveRSVPs(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "rsvps/rsvps-20260601T100000Z.csv", archive.Key)
	assert.Equal(t, 2, archive.Rows)
	assert.Contains(t, archive.URL, archive.Key)
	assert.Contains(t, string(f.archive.objects[archive.Key]), "maria@example.com")
}

func TestArchiveWithoutObjectStore(t *testing.T) {
	f := newFixture(t)
	admin := f.seed(t, "root-pass", "Admin", guest.GroupAdmin)

	svc := New(f.repos, f.sessions, nil)
	_, err := svc.Admin.ArchiveRSVPs(context.Background(), admin)
	assert.ErrorIs(t, err, common.ErrUnavailable)
}
