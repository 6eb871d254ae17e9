// Package authz decides page-level access from the request path and the
// session state. Decisions are pure; redirect targets are carried on the
// Action so callers can issue HTTP redirects without knowing the rules.
package authz

import (
	"strings"

	"github.com/Insper-Code/site-code/internal/domain"
)

// Action is the outcome of an access decision
type Action int

const (
	// Allow lets the request through
	Allow Action = iota
	// RedirectLogin sends an anonymous visitor to the login page
	RedirectLogin
	// RedirectMemberArea sends a non-admin away from admin pages
	RedirectMemberArea
)

// Redirect targets for the non-Allow actions
const (
	LoginPath      = "/login"
	MemberAreaPath = "/members-area"
	AdminPrefix    = "/admin"
)

// State is the session state relevant to an access decision
type State struct {
	LoggedIn bool
	Role     domain.Role
}

// publicPaths are exact matches open to everyone
var publicPaths = map[string]struct{}{
	"/":         {},
	"/login":    {},
	"/members":  {},
	"/games":    {},
	"/projects": {},
	"/about":    {},
	"/contact":  {},
}

// protectedPrefixes require a logged-in session
var protectedPrefixes = []string{MemberAreaPath, AdminPrefix}

// Decide resolves path and state to an action. Public paths match
// exactly, protected sections by prefix, and anything unmatched is
// allowed so that new pages default open rather than broken.
func Decide(path string, state State) Action {
	if _, ok := publicPaths[path]; ok {
		return Allow
	}

	protected := false
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			protected = true
			break
		}
	}
	if !protected {
		return Allow
	}

	if !state.LoggedIn {
		return RedirectLogin
	}

	if strings.HasPrefix(path, AdminPrefix) && state.Role != domain.RoleAdmin {
		return RedirectMemberArea
	}

	return Allow
}

// Target returns the redirect path for a non-Allow action
func (a Action) Target() string {
	switch a {
	case RedirectLogin:
		return LoginPath
	case RedirectMemberArea:
		return MemberAreaPath
	default:
		return ""
	}
}
