package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/dto"
	"github.com/Insper-Code/site-code/internal/middleware"
	"github.com/Insper-Code/site-code/internal/service"
	"github.com/Insper-Code/site-code/internal/token"
)

// stubAuthService returns canned results
type stubAuthService struct {
	loginResult *dto.AuthResponse
	loginErr    error
	user        *domain.User
	userErr     error
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	return nil
}

// stubSessionService returns a fixed revalidation
type stubSessionService struct {
	result service.Revalidation
}

func (s *stubSessionService) Revalidate(ctx context.Context, claims *token.SessionClaims, explicitRefresh bool) service.Revalidation {
	return s.result
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success sets session cookie", func(t *testing.T) {
		auth := &stubAuthService{
			loginResult: &dto.AuthResponse{
				Token: "signed-token",
				User:  dto.UserResponse{ID: "u1", Email: "ana@example.com", Role: "MEMBER"},
			},
		}
		h := NewAuthHandler(auth, &stubSessionService{})

		r := gin.New()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@example.com","password":"secret1"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookie {
				cookie = c
			}
		}
		if cookie == nil {
			t.Fatal("session cookie not set")
		}
		if cookie.Value != "signed-token" {
			t.Errorf("cookie value = %q", cookie.Value)
		}
		if !cookie.HttpOnly {
			t.Error("session cookie not HttpOnly")
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		auth := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
		h := NewAuthHandler(auth, &stubSessionService{})

		r := gin.New()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"x@example.com","password":"bad"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}

		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Success || body.Error.Code != "INVALID_CREDENTIALS" {
			t.Errorf("body = %s", w.Body.String())
		}

		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookie && c.MaxAge > 0 {
				t.Error("session cookie set on failed login")
			}
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{}, &stubSessionService{})

		r := gin.New()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

// stubUserRepo serves a single account, enough for the session engine
type stubUserRepo struct {
	user *domain.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		u := *r.user
		return &u, nil
	}
	return nil, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.user != nil && r.user.Email == email {
		u := *r.user
		return &u, nil
	}
	return nil, nil
}

func (r *stubUserRepo) GetAll(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (r *stubUserRepo) Update(ctx context.Context, u *domain.User, passwordHash string) error {
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) Count(ctx context.Context) (int, error) { return 0, nil }

// A password change logs the stale token out of every ordinary route, but
// the refresh endpoint must still re-sign the session from the account
// record instead of rejecting the request.
func TestAuthHandler_RefreshSessionAfterPasswordChange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := token.NewCodec("test-secret", 30*24*time.Hour, "portal")

	user := &domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleMember}
	raw, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	changed := claims.IssuedTime().Add(2 * time.Second)
	user.PasswordChangedAt = &changed

	repo := &stubUserRepo{user: user}
	sessions := service.NewSessionService(repo, codec)
	h := NewAuthHandler(&stubAuthService{}, sessions)

	r := gin.New()
	r.Use(middleware.Session(codec, sessions))
	r.POST(middleware.SessionRefreshPath, middleware.RequireAuth(), h.RefreshSession)
	r.GET("/api/v1/auth/me", middleware.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("ordinary route rejects the stale token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("refresh endpoint re-signs the session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, middleware.SessionRefreshPath, nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookie {
				cookie = c
			}
		}
		if cookie == nil || cookie.Value == "" || cookie.MaxAge <= 0 {
			t.Fatalf("refreshed session cookie = %+v", cookie)
		}

		fresh, err := codec.Parse(cookie.Value)
		if err != nil {
			t.Fatalf("Parse(refreshed cookie) error = %v", err)
		}
		if !fresh.SessionValid || fresh.UserID != "u1" {
			t.Errorf("refreshed claims = %+v", fresh)
		}

		var body struct {
			Data dto.AuthResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Data.Token != cookie.Value {
			t.Errorf("response token = %q, cookie = %q", body.Data.Token, cookie.Value)
		}
	})
}

func TestAuthHandler_RefreshSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := token.NewCodec("test-secret", time.Hour, "portal")

	issued, err := codec.Issue(&domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := codec.Parse(issued)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	t.Run("refreshed", func(t *testing.T) {
		sessions := &stubSessionService{result: service.Revalidation{
			Outcome: service.Refreshed,
			Claims:  claims,
			Token:   "fresh-token",
		}}
		h := NewAuthHandler(&stubAuthService{}, sessions)

		r := gin.New()
		r.POST("/refresh", func(c *gin.Context) {
			c.Set(middleware.ContextClaims, claims)
			h.RefreshSession(c)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		refreshed := false
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookie && c.Value == "fresh-token" {
				refreshed = true
			}
		}
		if !refreshed {
			t.Error("refreshed token not written to cookie")
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		sessions := &stubSessionService{result: service.Revalidation{
			Outcome: service.Invalid,
			Claims:  claims,
		}}
		h := NewAuthHandler(&stubAuthService{}, sessions)

		r := gin.New()
		r.POST("/refresh", func(c *gin.Context) {
			c.Set(middleware.ContextClaims, claims)
			h.RefreshSession(c)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("no session", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthService{}, &stubSessionService{})

		r := gin.New()
		r.POST("/refresh", h.RefreshSession)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
