package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	authmw "github.com/gravadigital/wedding-api/internal/middleware/auth"
	"github.com/gravadigital/wedding-api/internal/response"
	"github.com/gravadigital/wedding-api/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type LoginResponse struct {
	Success    bool        `json:"success"`
	GuestName  *string     `json:"guestName"`
	GuestGroup guest.Group `json:"guestGroup"`
	Token      string      `json:"token"`
	ExpiresAt  time.Time   `json:"expiresAt"`
}

type SessionResponse struct {
	GuestName  *string     `json:"guestName"`
	GuestGroup guest.Group `json:"guestGroup"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req PasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:    true,
		GuestName:  res.Credential.GuestName,
		GuestGroup: res.Credential.Group,
		Token:      res.Token,
		ExpiresAt:  res.ExpiresAt,
	})
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	credential, err := h.auth.ResolveCaller(c.Request.Context(), authmw.CallerFromRequest(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		GuestName:  credential.GuestName,
		GuestGroup: credential.Group,
	})
}
