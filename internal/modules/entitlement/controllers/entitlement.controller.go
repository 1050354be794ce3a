package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
	"github.com/adrian-moloca/dental-sub014/internal/modules/entitlement/dto"
	"github.com/adrian-moloca/dental-sub014/internal/modules/entitlement/services"
)

// EntitlementController HTTP surface of the resolution engines.
type EntitlementController struct {
	service *services.EntitlementService
}

func NewEntitlementController(service *services.EntitlementService) *EntitlementController {
	return &EntitlementController{service: service}
}

// ResolveModuleSet - POST /api/v1/entitlements/resolve
func (c *EntitlementController) ResolveModuleSet(ctx *gin.Context) {
	var req dto.ResolveModuleSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resolution request",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	result, err := c.service.Resolve(ctx.Request.Context(), toModuleCodes(req.ModuleCodes), billingCycle(req.BillingCycle))
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

// CalculatePricing - POST /api/v1/entitlements/pricing
func (c *EntitlementController) CalculatePricing(ctx *gin.Context) {
	var req dto.PricingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pricing request",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	snapshot, err := c.service.Snapshot(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	result := c.service.PricingEngine().Calculate(snapshot, toModuleCodes(req.ModuleCodes), billingCycle(req.BillingCycle))

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// AggregatePermissions - POST /api/v1/entitlements/permissions
func (c *EntitlementController) AggregatePermissions(ctx *gin.Context) {
	var req dto.PermissionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid permissions request",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	snapshot, err := c.service.Snapshot(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	permissions := c.service.Permissions().PermissionsFor(snapshot, toModuleCodes(req.ModuleCodes))

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"permissions": permissions,
			"total":       len(permissions),
		},
	})
}

// GetClosure - GET /api/v1/entitlements/modules/:code/closure
func (c *EntitlementController) GetClosure(ctx *gin.Context) {
	snapshot, err := c.service.Snapshot(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	code := catalog.ModuleCode(ctx.Param("code"))
	closure, err := c.service.Resolver().Closure(snapshot, code)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"module_code": code,
			"closure":     closure,
		},
	})
}

// CheckRemovable - GET /api/v1/entitlements/modules/:code/removable?enabled=a,b,c
func (c *EntitlementController) CheckRemovable(ctx *gin.Context) {
	enabledParam := ctx.Query("enabled")
	if strings.TrimSpace(enabledParam) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "enabled query parameter required (comma-separated module codes)",
		})
		return
	}

	snapshot, err := c.service.Snapshot(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	enabled := make([]catalog.ModuleCode, 0)
	for _, part := range strings.Split(enabledParam, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			enabled = append(enabled, catalog.ModuleCode(trimmed))
		}
	}

	code := catalog.ModuleCode(ctx.Param("code"))
	check := c.service.Resolver().CanRemoveModule(snapshot, code, enabled)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    check,
	})
}

func toModuleCodes(raw []string) []catalog.ModuleCode {
	codes := make([]catalog.ModuleCode, 0, len(raw))
	for _, code := range raw {
		codes = append(codes, catalog.ModuleCode(code))
	}
	return codes
}

func billingCycle(raw string) services.BillingCycle {
	cycle := services.BillingCycle(raw)
	if !cycle.Valid() {
		return services.BillingCycleMonthly
	}
	return cycle
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
