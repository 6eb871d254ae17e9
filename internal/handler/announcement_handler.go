package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/dto"
	"github.com/Insper-Code/site-code/internal/middleware"
	"github.com/Insper-Code/site-code/internal/service"
	"github.com/Insper-Code/site-code/pkg/response"
)

// AnnouncementHandler handles announcement HTTP requests
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// List returns all announcements, newest first
// GET /api/v1/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	list, err := h.announcementService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToAnnouncementResponses(list)))
}

// Get returns a single announcement
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) Get(c *gin.Context) {
	a, err := h.announcementService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Announcement not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToAnnouncementResponse(a)))
}

// Create publishes an announcement authored by the acting admin
// POST /api/v1/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	author := c.GetString(middleware.ContextUserName)

	a, err := h.announcementService.Create(c.Request.Context(), &req, author)
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(dto.ToAnnouncementResponse(a)))
}

// Update edits an announcement
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	a, err := h.announcementService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnnouncementNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Announcement not found"))
		case domain.IsValidationError(err):
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.ToAnnouncementResponse(a)))
}

// Delete removes an announcement
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Announcement not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Announcement deleted"}))
}
