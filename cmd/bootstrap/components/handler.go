package components

import (
	"unicart/internal/handler"
	"unicart/internal/handler/api"
	"unicart/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewAccountHandler,
		api.NewCheckoutHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
