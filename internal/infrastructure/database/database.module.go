package database

import (
	"go.uber.org/fx"

	"medtriage-core/internal/infrastructure/database/mongodb"
	"medtriage-core/internal/infrastructure/database/postgres"
	"medtriage-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(

	// Modules database
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
