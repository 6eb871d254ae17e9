package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/dto"
)

func seedAnnouncement(t *testing.T, repo *mockAnnouncementRepository, title string, publishedAt time.Time) *domain.Announcement {
	t.Helper()
	a := &domain.Announcement{
		ID:          uuid.New().String(),
		Title:       title,
		Body:        "body of " + title,
		Category:    domain.CategoryInformative,
		Author:      "Seeder",
		PublishedAt: publishedAt,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed announcement: %v", err)
	}
	return a
}

func TestAnnouncementService_List(t *testing.T) {
	repo := newMockAnnouncementRepository()
	cache := &mockAnnouncementCache{}
	svc := NewAnnouncementService(repo, cache)

	now := time.Now()
	seedAnnouncement(t, repo, "oldest", now.Add(-2*time.Hour))
	seedAnnouncement(t, repo, "newest", now)
	seedAnnouncement(t, repo, "middle", now.Add(-time.Hour))

	t.Run("newest first", func(t *testing.T) {
		list, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("len(list) = %d, want 3", len(list))
		}
		if list[0].Title != "newest" || list[2].Title != "oldest" {
			t.Errorf("order = [%s %s %s], want newest first", list[0].Title, list[1].Title, list[2].Title)
		}
	})

	t.Run("second read served from cache", func(t *testing.T) {
		if cache.list == nil {
			t.Fatal("cache not populated by first read")
		}
		repo.failAll = true
		defer func() { repo.failAll = false }()

		list, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v, want cache hit", err)
		}
		if len(list) != 3 {
			t.Errorf("len(list) = %d, want 3 from cache", len(list))
		}
	})

	t.Run("cache failure falls through to repository", func(t *testing.T) {
		cache.failAll = true
		defer func() { cache.failAll = false }()

		list, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 3 {
			t.Errorf("len(list) = %d, want 3", len(list))
		}
	})
}

func TestAnnouncementService_Create(t *testing.T) {
	repo := newMockAnnouncementRepository()
	cache := &mockAnnouncementCache{}
	svc := NewAnnouncementService(repo, cache)

	a, err := svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:    "Meeting",
		Body:     "Thursday 6pm",
		Category: "importante",
	}, "Ana Admin")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.Author != "Ana Admin" {
		t.Errorf("Author = %v, want acting user's name", a.Author)
	}
	if a.PublishedAt.IsZero() {
		t.Error("PublishedAt not set")
	}
	if cache.invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidated)
	}

	_, err = svc.Create(context.Background(), &dto.CreateAnnouncementRequest{
		Title:    "Bad",
		Body:     "category",
		Category: "trivial",
	}, "Ana Admin")
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("Create() error = %v, want ErrInvalidCategory", err)
	}
}

func TestAnnouncementService_Update(t *testing.T) {
	repo := newMockAnnouncementRepository()
	cache := &mockAnnouncementCache{}
	svc := NewAnnouncementService(repo, cache)
	a := seedAnnouncement(t, repo, "original", time.Now())

	updated, err := svc.Update(context.Background(), a.ID, &dto.UpdateAnnouncementRequest{
		Title:    "edited",
		Body:     "new body",
		Category: "urgente",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "edited" || updated.Category != domain.CategoryUrgent {
		t.Errorf("Update() = %+v", updated)
	}
	if cache.invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidated)
	}

	_, err = svc.Update(context.Background(), "ghost", &dto.UpdateAnnouncementRequest{
		Title:    "x",
		Body:     "y",
		Category: "urgente",
	})
	if !errors.Is(err, domain.ErrAnnouncementNotFound) {
		t.Errorf("Update(ghost) error = %v, want ErrAnnouncementNotFound", err)
	}
}

func TestAnnouncementService_Delete(t *testing.T) {
	repo := newMockAnnouncementRepository()
	cache := &mockAnnouncementCache{}
	svc := NewAnnouncementService(repo, cache)
	a := seedAnnouncement(t, repo, "to delete", time.Now())

	if err := svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := repo.items[a.ID]; ok {
		t.Error("announcement still present after delete")
	}
	if cache.invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidated)
	}

	if err := svc.Delete(context.Background(), a.ID); !errors.Is(err, domain.ErrAnnouncementNotFound) {
		t.Errorf("Delete() error = %v, want ErrAnnouncementNotFound", err)
	}
}

func TestAnnouncementService_NilCache(t *testing.T) {
	repo := newMockAnnouncementRepository()
	svc := NewAnnouncementService(repo, nil)
	seedAnnouncement(t, repo, "only", time.Now())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}
