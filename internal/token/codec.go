package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Insper-Code/site-code/internal/domain"
)

// SessionClaims is the signed payload identifying a session.
//
// The claim set is frozen at issuance. SessionValid starts true and is
// only ever downgraded on an in-memory copy during revalidation; the
// token itself is never re-signed except on an explicit refresh.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID       string      `json:"user_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	SessionValid bool        `json:"session_valid"`
}

// IssuedTime returns the issued-at timestamp of the claims
func (c *SessionClaims) IssuedTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// Codec signs and verifies session tokens
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewCodec creates a Codec. ttl is the maximum token age (30 days in
// the default configuration).
func NewCodec(secret string, ttl time.Duration, issuer string) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

// Issue signs a new session token for the given user with issued-at set
// to the current time
func (c *Codec) Issue(user *domain.User) (string, error) {
	return c.issueAt(user, time.Now())
}

func (c *Codec) issueAt(user *domain.User, now time.Time) (string, error) {
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		SessionValid: true,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Parse verifies the signature and decodes the claims. Malformed, forged
// and expired tokens all fail with domain.ErrInvalidToken.
func (c *Codec) Parse(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if !tok.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
