package database

import (
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/mongodb"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/redis"
)

var Module = fx.Options(
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
