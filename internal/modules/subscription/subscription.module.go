package subscription

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/modules/subscription/controllers"
	"github.com/adrian-moloca/dental-sub014/internal/modules/subscription/services"
)

// Module groups every provider of the Subscription domain.
var Module = fx.Options(
	fx.Provide(services.NewSubscriptionService),

	fx.Provide(controllers.NewSubscriptionController),

	fx.Invoke(RegisterSubscriptionRoutes),
)

// RegisterSubscriptionRoutes configures the Gin routes of tenant
// subscriptions. Mutations go through the resolver's closure and
// removal-safety checks before anything is persisted.
func RegisterSubscriptionRoutes(r *gin.Engine, ctrl *controllers.SubscriptionController) {
	api := r.Group("/api/v1/tenants/:tenantId/subscription")

	{
		api.GET("", ctrl.GetSubscription)
		api.POST("/modules", ctrl.EnableModule)
		api.DELETE("/modules/:code", ctrl.DisableModule)
		api.POST("/preview", ctrl.PreviewModuleSet)
	}
}
