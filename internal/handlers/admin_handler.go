package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/gravadigital/wedding-api/internal/middleware/auth"
	"github.com/gravadigital/wedding-api/internal/response"
	"github.com/gravadigital/wedding-api/internal/services"
)

// AdminHandler serves the admin panel. Routes are mounted behind
// authmw.AdminOnly, which puts the actor in the context.
type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListGuests handles GET /api/admin/guests
func (h *AdminHandler) ListGuests(c *gin.Context) {
	guests, err := h.admin.ListGuests(c.Request.Context(), authmw.Actor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// CreateGuest handles POST /api/admin/guests
func (h *AdminHandler) CreateGuest(c *gin.Context) {
	var req CreateGuestRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	created, err := h.admin.CreateGuest(c.Request.Context(), authmw.Actor(c), services.CreateGuestRequest{
		Password:   req.Password,
		GuestName:  req.GuestName,
		GuestGroup: req.GuestGroup,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateGuest handles PUT /api/admin/guests
func (h *AdminHandler) UpdateGuest(c *gin.Context) {
	var req UpdateGuestRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	updated, err := h.admin.UpdateGuest(c.Request.Context(), authmw.Actor(c), services.UpdateGuestRequest{
		ID:         req.ID,
		Password:   req.Password,
		GuestName:  req.GuestName,
		GuestGroup: req.GuestGroup,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteGuest handles DELETE /api/admin/guests
func (h *AdminHandler) DeleteGuest(c *gin.Context) {
	var req DeleteGuestRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.admin.DeleteGuest(c.Request.Context(), authmw.Actor(c), req.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Ack(c)
}

// ListRSVPs handles GET /api/admin/rsvps
func (h *AdminHandler) ListRSVPs(c *gin.Context) {
	subs, err := h.admin.ListRSVPs(c.Request.Context(), authmw.Actor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context(), authmw.Actor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportRSVPs handles GET /api/admin/rsvps/export
func (h *AdminHandler) ExportRSVPs(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.admin.ExportRSVPs(c.Request.Context(), authmw.Actor(c), &buf); err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="rsvps.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ArchiveRSVPs handles POST /api/admin/rsvps/archive
func (h *AdminHandler) ArchiveRSVPs(c *gin.Context) {
	archive, err := h.admin.ArchiveRSVPs(c.Request.Context(), authmw.Actor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, archive)
}
