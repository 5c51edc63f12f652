package container

import (
	"pollbase/internal/config"
	"pollbase/internal/service"
	"pollbase/internal/service/auth"
	"pollbase/pkg/logger"
	"pollbase/pkg/redis"
)

// Container holds the application's shared dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	RedisClient  *redis.Client
	AuthService  service.AuthService
	RoleResolver auth.RoleResolver
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Redis is optional; without it the rate limiter falls back to the
	// in-process store.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, using in-memory rate limiting")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, using in-memory rate limiting")
	}

	authService := auth.NewService(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseJWTSecret, log)
	roleResolver := auth.NewAllowlistResolver(cfg.AdminEmails)

	return &Container{
		Config:       cfg,
		Logger:       log,
		RedisClient:  redisClient,
		AuthService:  authService,
		RoleResolver: roleResolver,
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.AuthService
}

// GetRoleResolver returns the role resolver
func (c *Container) GetRoleResolver() auth.RoleResolver {
	return c.RoleResolver
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if a Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
