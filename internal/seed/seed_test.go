package seed

import (
	"context"
	"sort"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Insper-Code/site-code/internal/domain"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (m *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) Update(ctx context.Context, u *domain.User, passwordHash string) error {
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

func (m *memUserRepo) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}

type memAnnouncementRepo struct {
	items map[string]*domain.Announcement
}

func (m *memAnnouncementRepo) Create(ctx context.Context, a *domain.Announcement) error {
	m.items[a.ID] = a
	return nil
}

func (m *memAnnouncementRepo) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	return m.items[id], nil
}

func (m *memAnnouncementRepo) GetAll(ctx context.Context) ([]*domain.Announcement, error) {
	out := make([]*domain.Announcement, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (m *memAnnouncementRepo) Update(ctx context.Context, a *domain.Announcement) error {
	return nil
}

func (m *memAnnouncementRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memAnnouncementRepo) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func TestRun_EmptyTables(t *testing.T) {
	users := &memUserRepo{users: make(map[string]*domain.User)}
	announcements := &memAnnouncementRepo{items: make(map[string]*domain.Announcement)}

	if err := Run(context.Background(), users, announcements); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(users.users) != 2 {
		t.Errorf("seeded users = %d, want 2", len(users.users))
	}
	if len(announcements.items) != 4 {
		t.Errorf("seeded announcements = %d, want 4", len(announcements.items))
	}

	admin, _ := users.GetByEmail(context.Background(), "admin@code.insper.edu.br")
	if admin == nil {
		t.Fatal("default admin not seeded")
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("admin role = %v, want ADMIN", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")); err != nil {
		t.Errorf("admin password does not verify: %v", err)
	}

	member, _ := users.GetByEmail(context.Background(), "membro@code.insper.edu.br")
	if member == nil || member.Role != domain.RoleMember {
		t.Errorf("default member not seeded correctly: %+v", member)
	}
}

func TestRun_Idempotent(t *testing.T) {
	users := &memUserRepo{users: make(map[string]*domain.User)}
	announcements := &memAnnouncementRepo{items: make(map[string]*domain.Announcement)}

	if err := Run(context.Background(), users, announcements); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := Run(context.Background(), users, announcements); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(users.users) != 2 || len(announcements.items) != 4 {
		t.Errorf("second run duplicated seed data: %d users, %d announcements",
			len(users.users), len(announcements.items))
	}
}

func TestRun_NonEmptyTablesUntouched(t *testing.T) {
	users := &memUserRepo{users: map[string]*domain.User{
		"existing": {ID: "existing", Email: "someone@example.com", CreatedAt: time.Now()},
	}}
	announcements := &memAnnouncementRepo{items: make(map[string]*domain.Announcement)}

	if err := Run(context.Background(), users, announcements); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(users.users) != 1 {
		t.Errorf("users seeded despite existing rows: %d", len(users.users))
	}
	if len(announcements.items) != 4 {
		t.Errorf("announcements = %d, want 4 on empty table", len(announcements.items))
	}
}
