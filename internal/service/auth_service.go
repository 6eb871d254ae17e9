package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/dto"
	"github.com/Insper-Code/site-code/internal/repository"
	"github.com/Insper-Code/site-code/internal/token"
	"github.com/Insper-Code/site-code/pkg/telemetry"
)

// AuthService defines authentication operations
type AuthService interface {
	// Login verifies credentials and issues a session token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Register creates a MEMBER account and issues a session token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// GetUser retrieves the account behind a session
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// ChangePassword verifies the current password and sets a new one
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	codec    *token.Codec
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, codec *token.Codec) AuthService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
	}
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both surface as ErrInvalidCredentials so responses never
// reveal whether an account exists.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "unknown email")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return &dto.AuthResponse{
		Token: signed,
		User:  dto.ToUserResponse(user),
	}, nil
}

// Register creates a new account. The role is always MEMBER regardless of
// the request; admin accounts are only created through the admin API.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if exists {
		span.SetStatus(codes.Error, "email taken")
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return &dto.AuthResponse{
		Token: signed,
		User:  dto.ToUserResponse(user),
	}, nil
}

// GetUser retrieves the account behind a session
func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.get_user")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ChangePassword verifies the current password and writes the new hash.
// The repository writes hash and password_changed_at in one statement, so
// every other session of this account is invalidated at the same instant
// the new password takes effect.
func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.change_password")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		span.SetStatus(codes.Error, "wrong current password")
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := s.userRepo.Update(ctx, user, string(hash)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
