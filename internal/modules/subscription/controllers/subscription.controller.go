package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
	entitlementsvc "github.com/adrian-moloca/dental-sub014/internal/modules/entitlement/services"
	"github.com/adrian-moloca/dental-sub014/internal/modules/subscription/dto"
	"github.com/adrian-moloca/dental-sub014/internal/modules/subscription/services"
)

// SubscriptionController HTTP surface of tenant subscriptions.
type SubscriptionController struct {
	service *services.SubscriptionService
}

func NewSubscriptionController(service *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{service: service}
}

// GetSubscription - GET /api/v1/tenants/:tenantId/subscription
func (c *SubscriptionController) GetSubscription(ctx *gin.Context) {
	tenantID, ok := tenantIDFromPath(ctx)
	if !ok {
		return
	}

	entitlements, err := c.service.Get(ctx.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entitlements,
	})
}

// EnableModule - POST /api/v1/tenants/:tenantId/subscription/modules
func (c *SubscriptionController) EnableModule(ctx *gin.Context) {
	tenantID, ok := tenantIDFromPath(ctx)
	if !ok {
		return
	}

	var req dto.EnableModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid enable request",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	entitlements, err := c.service.EnableModule(ctx.Request.Context(), tenantID, catalog.ModuleCode(req.ModuleCode))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entitlements,
	})
}

// DisableModule - DELETE /api/v1/tenants/:tenantId/subscription/modules/:code
func (c *SubscriptionController) DisableModule(ctx *gin.Context) {
	tenantID, ok := tenantIDFromPath(ctx)
	if !ok {
		return
	}

	code := catalog.ModuleCode(ctx.Param("code"))
	entitlements, err := c.service.DisableModule(ctx.Request.Context(), tenantID, code)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entitlements,
	})
}

// PreviewModuleSet - POST /api/v1/tenants/:tenantId/subscription/preview
func (c *SubscriptionController) PreviewModuleSet(ctx *gin.Context) {
	if _, ok := tenantIDFromPath(ctx); !ok {
		return
	}

	var req dto.PreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid preview request",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	codes := make([]catalog.ModuleCode, 0, len(req.ModuleCodes))
	for _, code := range req.ModuleCodes {
		codes = append(codes, catalog.ModuleCode(code))
	}

	cycle := entitlementsvc.BillingCycle(req.BillingCycle)
	if !cycle.Valid() {
		cycle = entitlementsvc.BillingCycleMonthly
	}

	result, err := c.service.Preview(ctx.Request.Context(), codes, cycle)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"installable": result.Installable(),
			"resolution":  result,
		},
	})
}

func tenantIDFromPath(ctx *gin.Context) (uuid.UUID, bool) {
	tenantID, err := uuid.Parse(ctx.Param("tenantId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "tenantId must be a valid UUID",
		})
		return uuid.Nil, false
	}
	return tenantID, true
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
