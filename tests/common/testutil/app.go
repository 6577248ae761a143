//go:build unit || e2e

package testutil

import (
	"context"
	"testing"
	"time"

	"shareit/internal/infra/cache"
	"shareit/internal/infra/memory"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/stretchr/testify/require"
)

// App wires every use case over a fresh in-memory store and a settable clock.
type App struct {
	Store *memory.Store
	Clock *clock.MockClock

	Users    commands.UserCommands
	Items    commands.ItemCommands
	Bookings commands.BookingCommands
	Comments commands.CommentCommands
	Requests commands.RequestCommands

	UserQ    queries.UserQueries
	ItemQ    queries.ItemQueries
	BookingQ queries.BookingQueries
	RequestQ queries.RequestQueries
}

func NewApp(now time.Time, policy commands.BookingPolicy) *App {
	return NewAppWithCache(now, policy, cache.NopUserCache{})
}

func NewAppWithCache(now time.Time, policy commands.BookingPolicy, userCache shared.UserCache) *App {
	store := memory.NewStore()
	clk := clock.NewMockClock(now)
	return &App{
		Store:    store,
		Clock:    clk,
		Users:    commands.NewUserCommands(store, userCache),
		Items:    commands.NewItemCommands(store),
		Bookings: commands.NewBookingCommands(store, policy),
		Comments: commands.NewCommentCommands(store, clk),
		Requests: commands.NewRequestCommands(store, clk),
		UserQ:    queries.NewUserQueries(store, userCache),
		ItemQ:    queries.NewItemQueries(store, clk, queries.NewAvailabilityProjector()),
		BookingQ: queries.NewBookingQueries(store, clk),
		RequestQ: queries.NewRequestQueries(store),
	}
}

func (a *App) MustUser(t *testing.T, name, email string) int64 {
	t.Helper()
	id, err := a.Users.Create(context.Background(), commands.CreateUserRequest{Name: name, Email: email})
	require.NoError(t, err)
	return id
}

func (a *App) MustItem(t *testing.T, ownerID int64, name string, available bool) int64 {
	t.Helper()
	id, err := a.Items.Create(context.Background(), commands.CreateItemRequest{
		Name:        name,
		Description: name + " for rent",
		Available:   available,
	}, ownerID)
	require.NoError(t, err)
	return id
}

// MustBooking creates a booking offset from the current clock.
func (a *App) MustBooking(t *testing.T, itemID, bookerID int64, startIn, endIn time.Duration) int64 {
	t.Helper()
	now := a.Clock.Now()
	id, err := a.Bookings.Create(context.Background(), commands.CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(startIn),
		End:    now.Add(endIn),
	}, bookerID)
	require.NoError(t, err)
	return id
}

func (a *App) MustDecide(t *testing.T, bookingID, ownerID int64, approve bool) {
	t.Helper()
	require.NoError(t, a.Bookings.Decide(context.Background(), bookingID, ownerID, approve))
}
