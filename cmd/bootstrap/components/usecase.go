package components

import (
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	queries.NewAvailabilityProjector,
	func(cfg config.Config) commands.BookingPolicy {
		return commands.BookingPolicy{
			RejectOverlappingApprovals: cfg.Booking.RejectOverlappingApprovals,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewUserCommands,
		commands.NewItemCommands,
		commands.NewBookingCommands,
		commands.NewCommentCommands,
		commands.NewRequestCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewItemQueries,
		queries.NewBookingQueries,
		queries.NewRequestQueries,
	),
)
