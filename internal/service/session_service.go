package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/repository"
	"github.com/Insper-Code/site-code/internal/token"
	"github.com/Insper-Code/site-code/pkg/logger"
	"github.com/Insper-Code/site-code/pkg/telemetry"
)

// Outcome is the result of revalidating a session against account state
type Outcome int

const (
	// Continue keeps the presented token as-is
	Continue Outcome = iota
	// Refreshed means a new token was signed from the current account record
	Refreshed
	// Invalid means the session must be treated as logged out
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Refreshed:
		return "refreshed"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Revalidation is the result of a Revalidate call. Token is only set when
// Outcome is Refreshed.
type Revalidation struct {
	Outcome Outcome
	Claims  *token.SessionClaims
	Token   string
}

// SessionService revalidates parsed session claims against current
// account state on every request
type SessionService interface {
	Revalidate(ctx context.Context, claims *token.SessionClaims, explicitRefresh bool) Revalidation
}

// sessionService implements SessionService
type sessionService struct {
	userRepo repository.UserRepository
	codec    *token.Codec
}

// NewSessionService creates a new SessionService
func NewSessionService(userRepo repository.UserRepository, codec *token.Codec) SessionService {
	return &sessionService{
		userRepo: userRepo,
		codec:    codec,
	}
}

// Revalidate checks the claims against the account store. Rules apply in
// order:
//
//  1. A token already marked invalid stays invalid, no lookup.
//  2. An explicit refresh rebuilds the claims from the current record and
//     re-signs; a missing account makes the refresh Invalid.
//  3. Otherwise the account must still exist and must not have changed its
//     password strictly after the token was issued.
//
// A store lookup failure yields Continue with the claims unchanged: reads
// stay available during an outage, while mutations keep failing closed at
// the repository.
func (s *sessionService) Revalidate(ctx context.Context, claims *token.SessionClaims, explicitRefresh bool) Revalidation {
	ctx, span := telemetry.StartSpan(ctx, "service.session.revalidate")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", claims.UserID),
		attribute.Bool("session.explicit_refresh", explicitRefresh),
	)

	if !claims.SessionValid {
		span.SetAttributes(attribute.String("session.outcome", "invalid"))
		return Revalidation{Outcome: Invalid, Claims: claims}
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Get().Warn("session revalidation lookup failed, continuing with existing claims",
			zap.String("user_id", claims.UserID),
			zap.Error(err),
		)
		span.SetAttributes(attribute.String("session.outcome", "continue"))
		return Revalidation{Outcome: Continue, Claims: claims}
	}

	if user == nil {
		claims.SessionValid = false
		span.SetAttributes(attribute.String("session.outcome", "invalid"))
		return Revalidation{Outcome: Invalid, Claims: claims}
	}

	if explicitRefresh {
		signed, err := s.codec.Issue(user)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("session.outcome", "continue"))
			return Revalidation{Outcome: Continue, Claims: claims}
		}
		fresh, err := s.codec.Parse(signed)
		if err != nil {
			span.SetAttributes(attribute.String("session.outcome", "continue"))
			return Revalidation{Outcome: Continue, Claims: claims}
		}
		span.SetAttributes(attribute.String("session.outcome", "refreshed"))
		return Revalidation{Outcome: Refreshed, Claims: fresh, Token: signed}
	}

	if passwordChangedAfter(user, claims) {
		claims.SessionValid = false
		span.SetAttributes(attribute.String("session.outcome", "invalid"))
		return Revalidation{Outcome: Invalid, Claims: claims}
	}

	span.SetAttributes(attribute.String("session.outcome", "continue"))
	return Revalidation{Outcome: Continue, Claims: claims}
}

// passwordChangedAfter reports whether the account's password changed
// strictly after the token was issued. The issued-at claim only carries
// second precision, so the change timestamp is truncated to seconds
// before comparing; a change within the issuance second, or exactly at
// it, keeps the token alive.
func passwordChangedAfter(user *domain.User, claims *token.SessionClaims) bool {
	if user.PasswordChangedAt == nil {
		return false
	}
	issued := claims.IssuedTime()
	if issued.IsZero() {
		return true
	}
	return user.PasswordChangedAt.Truncate(time.Second).After(issued)
}
