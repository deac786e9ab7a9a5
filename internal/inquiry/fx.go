package inquiry

import (
	"github.com/smallbiznis/storefront/internal/inquiry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inquiry.service",
	fx.Provide(service.New),
)
