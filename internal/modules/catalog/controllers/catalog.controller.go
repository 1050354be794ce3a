package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/dto"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// CatalogController HTTP surface of the module catalog.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// ListModules - GET /api/v1/catalog/modules
func (c *CatalogController) ListModules(ctx *gin.Context) {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	modules, err := c.service.ListModules(ctx.Request.Context(), filter)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"modules": modules,
			"total":   len(modules),
		},
	})
}

// GetModule - GET /api/v1/catalog/modules/:code
func (c *CatalogController) GetModule(ctx *gin.Context) {
	code := services.ModuleCode(ctx.Param("code"))

	module, err := c.service.GetModule(ctx.Request.Context(), code)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    module,
	})
}

// SearchModules - GET /api/v1/catalog/modules/search?q=
func (c *CatalogController) SearchModules(ctx *gin.Context) {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	modules, err := c.service.SearchModules(ctx.Request.Context(), ctx.Query("q"), filter)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"modules": modules,
			"total":   len(modules),
		},
	})
}

// CreateModule - POST /api/v1/catalog/modules
func (c *CatalogController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid module definition",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	module, err := c.service.CreateModule(ctx.Request.Context(), req, actorFromContext(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    module,
	})
}

// UpdateModule - PUT /api/v1/catalog/modules/:code
func (c *CatalogController) UpdateModule(ctx *gin.Context) {
	var req dto.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid module patch",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	code := services.ModuleCode(ctx.Param("code"))
	module, err := c.service.UpdateModule(ctx.Request.Context(), code, req, actorFromContext(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    module,
	})
}

// SoftDeleteModule - DELETE /api/v1/catalog/modules/:code
func (c *CatalogController) SoftDeleteModule(ctx *gin.Context) {
	var req dto.SoftDeleteModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Deprecation reason required",
			"details": map[string]interface{}{
				"validation_error": err.Error(),
			},
		})
		return
	}

	code := services.ModuleCode(ctx.Param("code"))
	if err := c.service.SoftDeleteModule(ctx.Request.Context(), code, req.Reason, actorFromContext(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"module_code": code,
			"deprecated":  true,
		},
	})
}

// ReactivateModule - POST /api/v1/catalog/modules/:code/reactivate
func (c *CatalogController) ReactivateModule(ctx *gin.Context) {
	code := services.ModuleCode(ctx.Param("code"))
	if err := c.service.ReactivateModule(ctx.Request.Context(), code, actorFromContext(ctx)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"module_code": code,
			"deprecated":  false,
		},
	})
}

// GetAuditTrail - GET /api/v1/catalog/modules/:code/audit
func (c *CatalogController) GetAuditTrail(ctx *gin.Context) {
	code := services.ModuleCode(ctx.Param("code"))

	limit := int64(50)
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = parsed
		}
	}

	events, err := c.service.AuditTrail(ctx.Request.Context(), code, limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"module_code": code,
			"events":      events,
		},
	})
}

// filterFromQuery parses the shared kind/category/active/deprecated
// query parameters.
func filterFromQuery(ctx *gin.Context) (services.ListFilter, error) {
	filter := services.ListFilter{}

	if raw := ctx.Query("kind"); raw != "" {
		kind := services.ModuleKind(raw)
		if !kind.Valid() {
			return filter, services.NewValidationError(
				"kind must be CORE or PREMIUM",
				map[string]interface{}{"kind": raw},
			)
		}
		filter.Kind = &kind
	}
	if raw := ctx.Query("category"); raw != "" {
		category := raw
		filter.Category = &category
	}
	if raw := ctx.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, services.NewValidationError(
				"active must be a boolean",
				map[string]interface{}{"active": raw},
			)
		}
		filter.Active = &active
	}
	if raw := ctx.Query("deprecated"); raw != "" {
		deprecated, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, services.NewValidationError(
				"deprecated must be a boolean",
				map[string]interface{}{"deprecated": raw},
			)
		}
		filter.Deprecated = &deprecated
	}

	return filter, nil
}

// actorFromContext reads the caller identity injected by the admin
// guard; empty when enforcement is disabled.
func actorFromContext(ctx *gin.Context) string {
	return ctx.GetString("admin_actor")
}

// respondServiceError maps business error tags to HTTP status codes.
func respondServiceError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.ErrorType(err) {
	case services.ErrTypeValidation:
		status = http.StatusBadRequest
	case services.ErrTypeNotFound:
		status = http.StatusNotFound
	case services.ErrTypeConflict:
		status = http.StatusConflict
	case services.ErrTypeDependency, services.ErrTypeCycle:
		status = http.StatusUnprocessableEntity
	}

	body := gin.H{"error": err.Error()}
	var svcErr *services.ServiceError
	if e, ok := err.(*services.ServiceError); ok {
		svcErr = e
	}
	if svcErr != nil && svcErr.Details != nil {
		body["details"] = svcErr.Details
	}

	ctx.JSON(status, body)
}
