package di

import (
	"github.com/Insper-Code/site-code/internal/handler"
	"github.com/Insper-Code/site-code/internal/repository"
	"github.com/Insper-Code/site-code/internal/service"
	"github.com/Insper-Code/site-code/internal/token"
	"github.com/Insper-Code/site-code/pkg/config"
	"github.com/Insper-Code/site-code/pkg/database"
	"github.com/Insper-Code/site-code/pkg/redis"
)

// Container holds all dependencies for the portal
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client
	Codec *token.Codec

	// Repositories
	UserRepo          repository.UserRepository
	AnnouncementRepo  repository.AnnouncementRepository
	AnnouncementCache repository.AnnouncementCache

	// Services
	AuthService         service.AuthService
	SessionService      service.SessionService
	UserService         service.UserService
	AnnouncementService service.AnnouncementService

	// Handlers
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	AnnouncementHandler *handler.AnnouncementHandler
	HealthHandler       *handler.HealthHandler
}

// NewContainer wires repositories, services and handlers together.
// redisClient may be nil; announcement reads then skip the cache.
func NewContainer(cfg *config.Config, db *database.PostgresDB, redisClient *redis.Client) *Container {
	c := &Container{
		DB:    db,
		Redis: redisClient,
	}

	c.Codec = token.NewCodec(cfg.Session.Secret, cfg.Session.TokenTTL, cfg.Session.Issuer)

	// Repositories
	c.UserRepo = repository.NewPostgresUserRepository(db.Pool())
	c.AnnouncementRepo = repository.NewPostgresAnnouncementRepository(db.Pool())
	if redisClient != nil {
		c.AnnouncementCache = repository.NewRedisAnnouncementCache(redisClient.Client())
	}

	// Services
	c.AuthService = service.NewAuthService(c.UserRepo, c.Codec)
	c.SessionService = service.NewSessionService(c.UserRepo, c.Codec)
	c.UserService = service.NewUserService(c.UserRepo)
	c.AnnouncementService = service.NewAnnouncementService(c.AnnouncementRepo, c.AnnouncementCache)

	// Handlers
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, c.SessionService)
	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.AnnouncementHandler = handler.NewAnnouncementHandler(c.AnnouncementService)
	c.HealthHandler = handler.NewHealthHandler(db, redisClient)

	return c
}
