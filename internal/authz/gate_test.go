package authz

import (
	"testing"

	"github.com/Insper-Code/site-code/internal/domain"
)

func TestDecide(t *testing.T) {
	anon := State{}
	member := State{LoggedIn: true, Role: domain.RoleMember}
	admin := State{LoggedIn: true, Role: domain.RoleAdmin}

	tests := []struct {
		name  string
		path  string
		state State
		want  Action
	}{
		{"root is public", "/", anon, Allow},
		{"login is public", "/login", anon, Allow},
		{"members page is public", "/members", anon, Allow},
		{"about is public", "/about", anon, Allow},
		{"member area anonymous", "/members-area", anon, RedirectLogin},
		{"member area subpage anonymous", "/members-area/announcements", anon, RedirectLogin},
		{"member area logged in", "/members-area", member, Allow},
		{"admin anonymous", "/admin", anon, RedirectLogin},
		{"admin as member", "/admin", member, RedirectMemberArea},
		{"admin subpage as member", "/admin/users", member, RedirectMemberArea},
		{"admin as admin", "/admin", admin, Allow},
		{"admin subpage as admin", "/admin/users", admin, Allow},
		{"unknown path anonymous", "/random-page", anon, Allow},
		{"unknown path logged in", "/random-page", member, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.path, tt.state); got != tt.want {
				t.Errorf("Decide(%q, %+v) = %v, want %v", tt.path, tt.state, got, tt.want)
			}
		})
	}
}

func TestActionTarget(t *testing.T) {
	if got := RedirectLogin.Target(); got != "/login" {
		t.Errorf("RedirectLogin.Target() = %q, want /login", got)
	}
	if got := RedirectMemberArea.Target(); got != "/members-area" {
		t.Errorf("RedirectMemberArea.Target() = %q, want /members-area", got)
	}
	if got := Allow.Target(); got != "" {
		t.Errorf("Allow.Target() = %q, want empty", got)
	}
}
