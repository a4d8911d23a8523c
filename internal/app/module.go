package app

import (
	"medtriage-core/internal/app/bootstrap"
	"medtriage-core/internal/app/config"
	"medtriage-core/internal/infrastructure/database"
	"medtriage-core/internal/infrastructure/database/redis"
	"medtriage-core/internal/infrastructure/logger"
	"medtriage-core/internal/modules/ehr"
	"medtriage-core/internal/modules/queue"
	"medtriage-core/internal/modules/triage"
	"medtriage-core/internal/shared/middleware/staff"

	"go.uber.org/fx"
)

// NewRedisKeyGenerator crée le générateur de clés Redis
func NewRedisKeyGenerator(cfg *config.Config) *redis.RedisKeyGenerator {
	return redis.NewRedisKeyGenerator(cfg.Environment)
}

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewDatabaseConfigProvider),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Utilitaires partagés (après config, avant infrastructure)
	fx.Provide(NewRedisKeyGenerator),

	// Infrastructure
	database.Module,
	logger.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	fx.Provide(staff.NewTokenMiddleware),

	// Router (fourni avant les modules métier qui y enregistrent leurs routes)
	fx.Provide(NewRouter),

	// Modules métier
	queue.Module,
	triage.Module,
	ehr.Module,

	// Bootstrap System - Providers
	fx.Provide(bootstrap.NewSchemaManager),
	fx.Provide(bootstrap.NewSeedingManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
