package middleware

import (
	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/shared/middleware/admin"
	"github.com/adrian-moloca/dental-sub014/internal/shared/middleware/security"
)

// Module groups the shared middleware providers.
var Module = fx.Options(
	fx.Provide(admin.NewAdminMiddleware),
	fx.Provide(security.CORSMiddleware),
)
