package security

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
)

// CORSHandler dedicated type for Fx provisioning.
type CORSHandler gin.HandlerFunc

// CORSMiddleware builds the CORS rules from configuration.
func CORSMiddleware(appConfig *config.Config) CORSHandler {
	corsConfig := appConfig.CORS

	return CORSHandler(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, allowedOrigin := range corsConfig.AllowedOrigins {
				if allowedOrigin == "*" || origin == allowedOrigin {
					return true
				}
			}
			return false
		},

		AllowMethods: corsConfig.AllowedMethods,

		AllowHeaders: append(corsConfig.AllowedHeaders,
			"X-Admin-Token",
			"X-Request-Id"),

		ExposeHeaders: []string{
			"Content-Length",
			"X-Request-Id",
		},

		AllowCredentials: corsConfig.AllowCredentials,

		MaxAge: time.Duration(corsConfig.MaxAge) * time.Second,
	}))
}
