package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/logger"
	securitymw "github.com/adrian-moloca/dental-sub014/internal/shared/middleware/security"
)

func NewRouter(cfg *config.Config, loggerMiddleware *logger.LoggerMiddleware, cors securitymw.CORSHandler) *gin.Engine {
	configureGinMode(cfg.Environment)

	// No default middleware: logging, recovery and CORS are wired
	// explicitly so their order stays under control.
	r := gin.New()

	r.Use(loggerMiddleware.GinLogger())
	r.Use(loggerMiddleware.GinRecovery())
	r.Use(gin.HandlerFunc(cors))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "ready",
			},
		})
	})

	return r
}

// configureGinMode sets the Gin mode from the environment name.
func configureGinMode(environment string) {
	switch environment {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
