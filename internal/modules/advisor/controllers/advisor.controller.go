package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adrian-moloca/dental-sub014/internal/modules/advisor/dto"
	"github.com/adrian-moloca/dental-sub014/internal/modules/advisor/services"
	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// AdvisorController HTTP surface of recommendations and comparisons.
type AdvisorController struct {
	recommendations *services.RecommendationService
	comparisons     *services.ComparisonService
}

func NewAdvisorController(
	recommendations *services.RecommendationService,
	comparisons *services.ComparisonService,
) *AdvisorController {
	return &AdvisorController{
		recommendations: recommendations,
		comparisons:     comparisons,
	}
}

// GetRecommendations - POST /api/v1/advisor/recommendations
func (c *AdvisorController) GetRecommendations(ctx *gin.Context) {
	var req dto.RecommendationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid recommendations request",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	enabled := make([]catalog.ModuleCode, 0, len(req.EnabledModules))
	for _, code := range req.EnabledModules {
		enabled = append(enabled, catalog.ModuleCode(code))
	}

	modules, err := c.recommendations.Recommend(ctx.Request.Context(), enabled)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"recommendations": modules,
			"total":           len(modules),
		},
	})
}

// CompareModules - GET /api/v1/advisor/compare?a=CODE&b=CODE
func (c *AdvisorController) CompareModules(ctx *gin.Context) {
	codeA := ctx.Query("a")
	codeB := ctx.Query("b")
	if codeA == "" || codeB == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "a and b query parameters required",
		})
		return
	}

	result, err := c.comparisons.Compare(ctx.Request.Context(), catalog.ModuleCode(codeA), catalog.ModuleCode(codeB))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// respondServiceError maps business error tags to HTTP status codes.
func respondServiceError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch catalog.ErrorType(err) {
	case catalog.ErrTypeValidation:
		status = http.StatusBadRequest
	case catalog.ErrTypeNotFound:
		status = http.StatusNotFound
	case catalog.ErrTypeConflict:
		status = http.StatusConflict
	case catalog.ErrTypeDependency, catalog.ErrTypeCycle:
		status = http.StatusUnprocessableEntity
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
