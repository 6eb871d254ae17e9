package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Insper-Code/site-code/internal/authz"
	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/service"
	"github.com/Insper-Code/site-code/internal/token"
	"github.com/Insper-Code/site-code/pkg/response"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "portal_session"

// SessionRefreshPath is the route whose revalidation runs as an explicit
// refresh instead of an ordinary check
const SessionRefreshPath = "/api/v1/auth/session/refresh"

// Context keys set by Session
const (
	ContextUserID         = "user_id"
	ContextUserName       = "user_name"
	ContextEmail          = "email"
	ContextRole           = "role"
	ContextClaims         = "session_claims"
	ContextRefreshedToken = "refreshed_token"
)

const cookieMaxAge = 30 * 24 * 60 * 60

// Session extracts the session token from the portal_session cookie or the
// Authorization header, parses it and revalidates it against account
// state. An authenticated request gets identity keys set in the gin
// context; anonymous and invalidated requests pass through with none set,
// leaving the access decision to RequireAuth, RequireAdmin or Gate.
//
// On the session refresh route the revalidation runs as an explicit
// refresh: the claims are rebuilt from the current account record before
// the password-changed check, so a session that changed its own password
// can still refresh instead of being logged out here.
func Session(codec *token.Codec, sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := codec.Parse(raw)
		if err != nil {
			clearSessionCookie(c)
			c.Next()
			return
		}

		explicitRefresh := c.Request.Method == http.MethodPost && c.FullPath() == SessionRefreshPath

		res := sessions.Revalidate(c.Request.Context(), claims, explicitRefresh)
		if res.Outcome == service.Invalid {
			clearSessionCookie(c)
			c.Next()
			return
		}

		if res.Outcome == service.Refreshed {
			SetSessionCookie(c, res.Token)
			c.Set(ContextRefreshedToken, res.Token)
		}

		setIdentity(c, res.Claims)
		c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose session is not an ADMIN
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
			return
		}
		if c.GetString(ContextRole) != string(domain.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

// Gate applies the page access rules: public pages pass, protected pages
// redirect anonymous visitors to login, admin pages redirect non-admins
// to the member area.
func Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := authz.State{}
		if _, ok := c.Get(ContextUserID); ok {
			state.LoggedIn = true
			state.Role = domain.Role(c.GetString(ContextRole))
		}

		action := authz.Decide(c.Request.URL.Path, state)
		if action != authz.Allow {
			c.Redirect(http.StatusFound, action.Target())
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie writes the session cookie on login and refresh
func SetSessionCookie(c *gin.Context, signed string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, signed, cookieMaxAge, "/", "", false, true)
}

// ClearSessionCookie removes the session cookie on logout
func ClearSessionCookie(c *gin.Context) {
	clearSessionCookie(c)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "Bearer "
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return authHeader[len(bearerPrefix):]
	}
	return ""
}

func setIdentity(c *gin.Context, claims *token.SessionClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserName, claims.Name)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, string(claims.Role))
	c.Set(ContextClaims, claims)
}
