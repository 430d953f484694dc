package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/wedding-api/internal/response"
	"github.com/gravadigital/wedding-api/internal/services"
)

type RSVPHandler struct {
	rsvps *services.RSVPService
}

func NewRSVPHandler(rsvps *services.RSVPService) *RSVPHandler {
	return &RSVPHandler{rsvps: rsvps}
}

// Submit handles POST /api/rsvp
func (h *RSVPHandler) Submit(c *gin.Context) {
	var req SubmitRSVPRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	_, err := h.rsvps.Submit(c.Request.Context(), services.SubmitRequest{
		Password:   req.Password,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Attendance: req.Attendance,
		Guests:     string(req.Guests),
		Kids:       string(req.Kids),
		Message:    req.Message,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Ack(c)
}

// Status handles POST /api/rsvp/status
func (h *RSVPHandler) Status(c *gin.Context) {
	var req PasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	status, err := h.rsvps.CheckStatus(c.Request.Context(), req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
