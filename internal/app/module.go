package app

import (
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/app/bootstrap"
	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/redis"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/logger"
	"github.com/adrian-moloca/dental-sub014/internal/modules/advisor"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog"
	"github.com/adrian-moloca/dental-sub014/internal/modules/entitlement"
	"github.com/adrian-moloca/dental-sub014/internal/modules/subscription"
	"github.com/adrian-moloca/dental-sub014/internal/shared/middleware"
)

// NewRedisKeyGenerator builds the environment-scoped key generator.
func NewRedisKeyGenerator(cfg *config.Config) *redis.RedisKeyGenerator {
	return redis.NewRedisKeyGenerator(cfg.Environment)
}

var AppModule = fx.Options(
	// Configuration first
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Shared utilities
	fx.Provide(NewRedisKeyGenerator),

	// Infrastructure
	database.Module,
	logger.Module,

	// Shared middleware
	middleware.Module,

	// Business modules
	catalog.Module,
	entitlement.Module,
	advisor.Module,
	subscription.Module,

	// Bootstrap system
	fx.Provide(bootstrap.NewBootstrapExtensionManager),
	fx.Provide(bootstrap.NewBootstrapSchemaManager),
	fx.Provide(bootstrap.NewBootstrapSeedingManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle: bootstrap runs before the HTTP server starts
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
