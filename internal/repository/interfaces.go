package repository

import (
	"context"
	"time"

	"github.com/Insper-Code/site-code/internal/domain"
)

// UserRepository defines data access for portal accounts
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	// Update persists name, email and role. When passwordHash is non-empty
	// the hash and password_changed_at are written in the same statement.
	Update(ctx context.Context, user *domain.User, passwordHash string) error
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// AnnouncementRepository defines data access for announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	GetByID(ctx context.Context, id string) (*domain.Announcement, error)
	// GetAll returns announcements ordered newest first
	GetAll(ctx context.Context) ([]*domain.Announcement, error)
	Update(ctx context.Context, a *domain.Announcement) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// AnnouncementCache caches the announcement list
type AnnouncementCache interface {
	GetList(ctx context.Context) ([]*domain.Announcement, error)
	SetList(ctx context.Context, list []*domain.Announcement, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
