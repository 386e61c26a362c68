package components

import (
	"storefront/internal/handler"
	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCategoryHandler,
		api.NewProductHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
