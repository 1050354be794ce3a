package advisor

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/modules/advisor/controllers"
	"github.com/adrian-moloca/dental-sub014/internal/modules/advisor/services"
)

// Module groups every provider of the Advisor domain.
var Module = fx.Options(
	fx.Provide(services.DefaultAffinityTable),
	fx.Provide(services.NewRecommendationService),
	fx.Provide(services.NewComparisonService),

	fx.Provide(controllers.NewAdvisorController),

	fx.Invoke(RegisterAdvisorRoutes),
)

// RegisterAdvisorRoutes configures the read-only advisor routes.
func RegisterAdvisorRoutes(r *gin.Engine, ctrl *controllers.AdvisorController) {
	api := r.Group("/api/v1/advisor")

	{
		api.POST("/recommendations", ctrl.GetRecommendations)
		api.GET("/compare", ctrl.CompareModules)
	}
}
