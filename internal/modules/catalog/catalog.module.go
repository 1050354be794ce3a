package catalog

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	redisinfra "github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/redis"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/controllers"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
	adminmw "github.com/adrian-moloca/dental-sub014/internal/shared/middleware/admin"
)

// NewCatalogService wires the catalog service with its cache TTL.
func NewCatalogService(
	db *postgres.Client,
	redisClient *redisinfra.Client,
	keys *redisinfra.RedisKeyGenerator,
	audit *services.CatalogAuditService,
	cfg *config.Config,
) *services.CatalogService {
	return services.NewCatalogService(db, redisClient, keys, audit, cfg.Catalog.SnapshotCacheTTL)
}

// Module groups every provider of the Catalog domain.
var Module = fx.Options(
	fx.Provide(services.NewCatalogAuditService),
	fx.Provide(NewCatalogService),

	fx.Provide(controllers.NewCatalogController),

	fx.Invoke(RegisterCatalogRoutes),
)

// RegisterCatalogRoutes configures the Gin routes of the catalog.
// Mutations sit behind the admin guard; reads are open.
func RegisterCatalogRoutes(
	r *gin.Engine,
	ctrl *controllers.CatalogController,
	adminMiddleware *adminmw.AdminMiddleware,
) {
	api := r.Group("/api/v1/catalog")

	{
		api.GET("/modules", ctrl.ListModules)
		api.GET("/modules/search", ctrl.SearchModules)
		api.GET("/modules/:code", ctrl.GetModule)
		api.GET("/modules/:code/audit", ctrl.GetAuditTrail)
	}

	mutations := api.Group("")
	mutations.Use(adminMiddleware.Handler())
	{
		mutations.POST("/modules", ctrl.CreateModule)
		mutations.PUT("/modules/:code", ctrl.UpdateModule)
		mutations.DELETE("/modules/:code", ctrl.SoftDeleteModule)
		mutations.POST("/modules/:code/reactivate", ctrl.ReactivateModule)
	}
}
