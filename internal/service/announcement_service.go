package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Insper-Code/site-code/internal/domain"
	"github.com/Insper-Code/site-code/internal/dto"
	"github.com/Insper-Code/site-code/internal/repository"
	"github.com/Insper-Code/site-code/pkg/logger"
	"github.com/Insper-Code/site-code/pkg/telemetry"
)

const announcementCacheTTL = 5 * time.Minute

// AnnouncementService defines announcement operations
type AnnouncementService interface {
	List(ctx context.Context) ([]*domain.Announcement, error)
	Get(ctx context.Context, id string) (*domain.Announcement, error)
	// Create publishes an announcement authored by the acting user
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, author string) (*domain.Announcement, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// announcementService implements AnnouncementService
type announcementService struct {
	repo  repository.AnnouncementRepository
	cache repository.AnnouncementCache
}

// NewAnnouncementService creates a new AnnouncementService. cache may be
// nil, in which case every read goes to the repository.
func NewAnnouncementService(repo repository.AnnouncementRepository, cache repository.AnnouncementCache) AnnouncementService {
	return &announcementService{repo: repo, cache: cache}
}

// List returns announcements newest first, served from cache when warm.
// Cache failures are logged and ignored; the repository is the source of
// truth.
func (s *announcementService) List(ctx context.Context) ([]*domain.Announcement, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.announcement.list")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			logger.Get().Warn("announcement cache read failed", zap.Error(err))
		} else if cached != nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.cache != nil && list != nil {
		if err := s.cache.SetList(ctx, list, announcementCacheTTL); err != nil {
			logger.Get().Warn("announcement cache write failed", zap.Error(err))
		}
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))
	return list, nil
}

// Get returns a single announcement
func (s *announcementService) Get(ctx context.Context, id string) (*domain.Announcement, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.announcement.get")
	defer span.End()

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, nil
}

// Create publishes an announcement
func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, author string) (*domain.Announcement, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.announcement.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	a := &domain.Announcement{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Body:        req.Body,
		Category:    domain.Category(req.Category),
		Author:      author,
		PublishedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.invalidateCache(ctx)
	span.SetAttributes(attribute.String("announcement.id", a.ID))
	return a, nil
}

// Update edits an announcement
func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*domain.Announcement, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.announcement.update")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAnnouncementNotFound
	}

	a.Title = req.Title
	a.Body = req.Body
	a.Category = domain.Category(req.Category)

	if err := s.repo.Update(ctx, a); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.invalidateCache(ctx)
	return a, nil
}

// Delete removes an announcement
func (s *announcementService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.announcement.delete")
	defer span.End()

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if a == nil {
		return domain.ErrAnnouncementNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *announcementService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Get().Warn("announcement cache invalidation failed", zap.Error(err))
	}
}
