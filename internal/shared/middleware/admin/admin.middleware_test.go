package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
)

func newGuardedRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	middleware := NewAdminMiddleware(cfg)
	r.POST("/guarded", middleware.Handler(), func(c *gin.Context) {
		actor, _ := c.Get("admin_actor")
		c.JSON(http.StatusOK, gin.H{"actor": actor})
	})
	return r
}

func TestAdminMiddleware_AllowAllByDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.AdminEnforce = false

	r := newGuardedRouter(t, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware_Enforced(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-token"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Security.AdminEnforce = true
	cfg.Security.AdminTokenHash = string(hash)

	r := newGuardedRouter(t, cfg)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "missing token", token: "", status: http.StatusUnauthorized},
		{name: "wrong token", token: "wrong-token", status: http.StatusUnauthorized},
		{name: "valid token", token: "correct-token", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
			if tt.token != "" {
				req.Header.Set("X-Admin-Token", tt.token)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), "catalog-admin")
			}
		})
	}
}
