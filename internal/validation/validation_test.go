package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
)

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("x", "name"))
	assert.EqualError(t, ValidateRequired("  \t", "name"), "name is required")
}

func TestValidateMaxLength(t *testing.T) {
	assert.NoError(t, ValidateMaxLength("ñandú", 5, "name"))
	assert.EqualError(t, ValidateMaxLength("abcdef", 5, "name"), "name must be at most 5 characters long")
}

func TestValidateUUID(t *testing.T) {
	want := uuid.New()

	got, err := ValidateUUID(" "+want.String()+" ", "id")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ValidateUUID("", "id")
	assert.EqualError(t, err, "id is required")

	_, err = ValidateUUID("not-a-uuid", "id")
	assert.EqualError(t, err, "id must be a valid UUID")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("maria@example.com"))
	for _, bad := range []string{"maria", "@example.com", "maria@"} {
		assert.Error(t, ValidateEmail(bad), bad)
	}
}

func TestGuestValidation(t *testing.T) {
	v := GuestValidation{}

	g, err := v.ValidateGroup("family")
	require.NoError(t, err)
	assert.Equal(t, guest.GroupFamily, g)

	_, err = v.ValidateGroup("Family")
	assert.Error(t, err)
	_, err = v.ValidateGroup("")
	assert.EqualError(t, err, "guest_group is required")

	long := strings.Repeat("a", MaxNameLength+1)
	assert.Error(t, v.ValidateGuestName(&long))
	assert.NoError(t, v.ValidateGuestName(nil))
	assert.Error(t, v.ValidatePassword(" "))
}

func TestRSVPValidation(t *testing.T) {
	v := RSVPValidation{}

	assert.NoError(t, v.ValidateContact("Maria", "m@example.com", "123"))
	assert.EqualError(t, v.ValidateContact("", "m@example.com", "123"), "name is required")
	assert.EqualError(t, v.ValidateContact("Maria", "nope", "123"), "email must have a valid format")
	assert.EqualError(t, v.ValidateContact("Maria", "m@example.com", ""), "phone is required")

	a, err := v.ValidateAttendance("YES")
	require.NoError(t, err)
	assert.Equal(t, rsvp.AttendanceYes, a)

	_, err = v.ValidateAttendance("maybe")
	assert.Error(t, err)

	assert.Error(t, v.ValidateMessage(strings.Repeat("x", MaxMessageLength+1)))
}
