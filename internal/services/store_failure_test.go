package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gravadigital/wedding-api/internal/domain/common"
	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// brokenGuests fails every password lookup the way a lost connection does
type brokenGuests struct{ postgres.GuestRepository }

func (brokenGuests) GetByPassword(context.Context, string) (*guest.Credential, error) {
	return nil, errConnRefused
}

type brokenRSVPs struct{ postgres.RSVPRepository }

func (brokenRSVPs) GetByPassword(context.Context, string) (*rsvp.Submission, error) {
	return nil, errConnRefused
}

func TestPasswordLookupStoreFailure(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(brokenGuests{}, NewSessionManager(testSecret, time.Hour))

	_, err := auth.Authenticate(ctx, "maria2026")
	assert.ErrorIs(t, err, common.ErrStoreFailure)
	assert.ErrorIs(t, err, errConnRefused)
	assert.Equal(t, "Authentication failed", common.PublicMessage(err))

	_, err = auth.Login(ctx, "maria2026")
	assert.ErrorIs(t, err, common.ErrStoreFailure)

	admin := NewAdminService(untouchedGuests{}, untouchedRSVPs{}, auth, nil)
	_, err = admin.Authorize(ctx, Caller{Password: "root-pass"})
	assert.ErrorIs(t, err, common.ErrStoreFailure)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

func TestSubmitAndStatusStoreFailure(t *testing.T) {
	ctx := context.Background()

	_, err := NewRSVPService(brokenGuests{}, untouchedRSVPs{}).Submit(ctx, validSubmit("maria2026"))
	assert.ErrorIs(t, err, common.ErrStoreFailure)
	assert.Equal(t, "Failed to submit", common.PublicMessage(err))

	_, err = NewRSVPService(untouchedGuests{}, brokenRSVPs{}).CheckStatus(ctx, "maria2026")
	assert.ErrorIs(t, err, common.ErrStoreFailure)
	assert.Equal(t, "Failed to check status", common.PublicMessage(err))
}
