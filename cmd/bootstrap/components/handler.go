package components

import (
	"shareit/internal/handler"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.PagingConfig { return cfg.Paging },
		api.NewUserHandler,
		api.NewItemHandler,
		api.NewBookingHandler,
		api.NewRequestHandler,
		middleware.NewIdentityMiddleware,
		func(u *api.UserHandler, i *api.ItemHandler, b *api.BookingHandler, r *api.RequestHandler) handler.Handlers {
			return handler.Handlers{Users: u, Items: i, Bookings: b, Requests: r}
		},
	),
	fx.Invoke(handler.NewRouter),
)
