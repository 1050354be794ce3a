package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
)

// AdminMiddleware guards catalog mutation endpoints.
//
// The original authorization guard of this subsystem always authorized;
// that behavior is preserved as the default and switched with
// SECURITY_ADMIN_ENFORCE instead of being silently replaced.
type AdminMiddleware struct {
	config *config.Config
}

func NewAdminMiddleware(cfg *config.Config) *AdminMiddleware {
	return &AdminMiddleware{config: cfg}
}

func (m *AdminMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Security.AdminEnforce {
			// Allow-all mode.
			c.Next()
			return
		}

		token := c.GetHeader("X-Admin-Token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "X-Admin-Token header required",
			})
			return
		}

		hash := []byte(m.config.Security.AdminTokenHash)
		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin token",
			})
			return
		}

		c.Set("admin_actor", "catalog-admin")
		c.Next()
	}
}
