package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/wedding-api/internal/domain/common"
)

// Count is a party-size field sent either as a JSON number or a string.
// The text is kept as received and coerced by the service.
type Count string

func (n *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Count(s)
	default:
		*n = Count(data)
	}
	return nil
}

type PasswordRequest struct {
	Password string `json:"password"`
}

type SubmitRSVPRequest struct {
	Password   string `json:"password"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Attendance string `json:"attendance"`
	Guests     Count  `json:"guests"`
	Kids       Count  `json:"kids"`
	Message    string `json:"message"`
}

type CreateGuestRequest struct {
	Password   string  `json:"password"`
	GuestName  *string `json:"guest_name"`
	GuestGroup string  `json:"guest_group"`
}

// UpdateGuestRequest distinguishes an absent key from an explicit null
type UpdateGuestRequest struct {
	ID         string                 `json:"id"`
	Password   common.Option[string]  `json:"password"`
	GuestName  common.Option[*string] `json:"guest_name"`
	GuestGroup common.Option[string]  `json:"guest_group"`
}

type DeleteGuestRequest struct {
	ID string `json:"id"`
}

var errInvalidPayload = common.InvalidInput("Invalid request payload")

// bindJSON decodes the body into req. An empty body leaves req zero-valued.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidPayload
	}
	return nil
}
