package entitlement

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/modules/entitlement/controllers"
	"github.com/adrian-moloca/dental-sub014/internal/modules/entitlement/services"
)

// Module groups every provider of the Entitlement domain.
var Module = fx.Options(
	fx.Provide(services.NewDependencyResolver),
	fx.Provide(services.NewPricingEngine),
	fx.Provide(services.NewPermissionAggregator),
	fx.Provide(services.NewEntitlementService),

	fx.Provide(controllers.NewEntitlementController),

	fx.Invoke(RegisterEntitlementRoutes),
)

// RegisterEntitlementRoutes configures the Gin routes of the engines.
// All endpoints are read-only computations over the catalog snapshot.
func RegisterEntitlementRoutes(r *gin.Engine, ctrl *controllers.EntitlementController) {
	api := r.Group("/api/v1/entitlements")

	{
		api.POST("/resolve", ctrl.ResolveModuleSet)
		api.POST("/pricing", ctrl.CalculatePricing)
		api.POST("/permissions", ctrl.AggregatePermissions)
		api.GET("/modules/:code/closure", ctrl.GetClosure)
		api.GET("/modules/:code/removable", ctrl.CheckRemovable)
	}
}
