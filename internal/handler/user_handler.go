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

// UserHandler handles admin account management requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all accounts
// GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToUserResponses(users)))
}

// Get returns a single account
// GET /api/v1/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToUserResponse(user)))
}

// Create creates an account with an explicit role
// POST /api/v1/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, response.Error("EMAIL_TAKEN", "Email is already registered"))
		case domain.IsValidationError(err):
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(dto.ToUserResponse(user)))
}

// Update updates an account
// PUT /api/v1/admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("User not found"))
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, response.Error("EMAIL_TAKEN", "Email is already registered"))
		case domain.IsValidationError(err):
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.ToUserResponse(user)))
}

// Delete removes an account. Deleting your own account is rejected so an
// admin cannot lock the portal out of administration by accident.
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)

	err := h.userService.Delete(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDeletionForbidden):
			c.JSON(http.StatusBadRequest, response.Error("SELF_DELETION_FORBIDDEN", "You cannot delete your own account"))
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("User not found"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "User deleted"}))
}
