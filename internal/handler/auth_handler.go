package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/dto"
	"github.com/Insper-Code/site-code/internal/middleware"
	"github.com/Insper-Code/site-code/internal/service"
	"github.com/Insper-Code/site-code/internal/token"
	"github.com/Insper-Code/site-code/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService    service.AuthService
	sessionService service.SessionService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, sessionService service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response.Error("INVALID_CREDENTIALS", "Invalid email or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	middleware.SetSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, response.Success(result))
}

// Register handles self-registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, response.Error("EMAIL_TAKEN", "Email is already registered"))
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, response.Error("WEAK_PASSWORD", err.Error()))
		case domain.IsValidationError(err):
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	middleware.SetSessionCookie(c, result.Token)
	c.JSON(http.StatusCreated, response.Success(result))
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; without a server-side session store there is nothing to revoke.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Logged out"}))
}

// RefreshSession re-signs the session from the current account record so
// profile or role changes become visible without a new login.
// POST /api/v1/auth/session/refresh
func (h *AuthHandler) RefreshSession(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
		return
	}

	// The session middleware already ran this request's revalidation as an
	// explicit refresh and set the cookie; just return the result.
	if refreshed := c.GetString(middleware.ContextRefreshedToken); refreshed != "" {
		c.JSON(http.StatusOK, response.Success(dto.AuthResponse{
			Token: refreshed,
			User: dto.UserResponse{
				ID:    claims.UserID,
				Name:  claims.Name,
				Email: claims.Email,
				Role:  string(claims.Role),
			},
		}))
		return
	}

	res := h.sessionService.Revalidate(c.Request.Context(), claims, true)
	switch res.Outcome {
	case service.Refreshed:
		middleware.SetSessionCookie(c, res.Token)
		c.JSON(http.StatusOK, response.Success(dto.AuthResponse{
			Token: res.Token,
			User: dto.UserResponse{
				ID:    res.Claims.UserID,
				Name:  res.Claims.Name,
				Email: res.Claims.Email,
				Role:  string(res.Claims.Role),
			},
		}))
	case service.Invalid:
		middleware.ClearSessionCookie(c)
		c.JSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Session is no longer valid"))
	default:
		// Refresh could not reach the store; the old token keeps working.
		c.JSON(http.StatusOK, response.Success(dto.AuthResponse{
			Token: "",
			User: dto.UserResponse{
				ID:    res.Claims.UserID,
				Name:  res.Claims.Name,
				Email: res.Claims.Email,
				Role:  string(res.Claims.Role),
			},
		}))
	}
}

// Me returns the account behind the current session
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.authService.GetUser(c.Request.Context(), userID)
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

// ChangePassword handles a self-service password change
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, response.Error("INVALID_CREDENTIALS", "Current password is incorrect"))
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, response.Error("WEAK_PASSWORD", err.Error()))
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("User not found"))
		case domain.IsValidationError(err):
			c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Password changed"}))
}

func claimsFromContext(c *gin.Context) *token.SessionClaims {
	v, ok := c.Get(middleware.ContextClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
