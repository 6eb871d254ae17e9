package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Insper-Code/site-code/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// mockUserRepository is an in-memory UserRepository
type mockUserRepository struct {
	users map[string]*domain.User
	// failAll makes every method return errStoreDown
	failAll bool
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.failAll {
		return errStoreDown
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User, passwordHash string) error {
	if m.failAll {
		return errStoreDown
	}
	stored, ok := m.users[user.ID]
	if !ok {
		return nil
	}
	now := time.Now()
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Role = user.Role
	stored.UpdatedAt = now
	if passwordHash != "" {
		stored.PasswordHash = passwordHash
		stored.PasswordChangedAt = &now
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.failAll {
		return errStoreDown
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.failAll {
		return false, errStoreDown
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int, error) {
	if m.failAll {
		return 0, errStoreDown
	}
	return len(m.users), nil
}

// mockAnnouncementRepository is an in-memory AnnouncementRepository
type mockAnnouncementRepository struct {
	items   map[string]*domain.Announcement
	failAll bool
}

func newMockAnnouncementRepository() *mockAnnouncementRepository {
	return &mockAnnouncementRepository{items: make(map[string]*domain.Announcement)}
}

func (m *mockAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	if m.failAll {
		return errStoreDown
	}
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockAnnouncementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockAnnouncementRepository) GetAll(ctx context.Context) ([]*domain.Announcement, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	out := make([]*domain.Announcement, 0, len(m.items))
	for _, a := range m.items {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (m *mockAnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	if m.failAll {
		return errStoreDown
	}
	stored, ok := m.items[a.ID]
	if !ok {
		return nil
	}
	stored.Title = a.Title
	stored.Body = a.Body
	stored.Category = a.Category
	return nil
}

func (m *mockAnnouncementRepository) Delete(ctx context.Context, id string) error {
	if m.failAll {
		return errStoreDown
	}
	delete(m.items, id)
	return nil
}

func (m *mockAnnouncementRepository) Count(ctx context.Context) (int, error) {
	if m.failAll {
		return 0, errStoreDown
	}
	return len(m.items), nil
}

// mockAnnouncementCache is an in-memory AnnouncementCache
type mockAnnouncementCache struct {
	list        []*domain.Announcement
	invalidated int
	failAll     bool
}

func (m *mockAnnouncementCache) GetList(ctx context.Context) ([]*domain.Announcement, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	return m.list, nil
}

func (m *mockAnnouncementCache) SetList(ctx context.Context, list []*domain.Announcement, ttl time.Duration) error {
	if m.failAll {
		return errStoreDown
	}
	m.list = list
	return nil
}

func (m *mockAnnouncementCache) Invalidate(ctx context.Context) error {
	if m.failAll {
		return errStoreDown
	}
	m.list = nil
	m.invalidated++
	return nil
}
