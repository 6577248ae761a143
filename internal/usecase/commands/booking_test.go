//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/shared"
	"shareit/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	// approve, then comment once the window is over
	t.Run("waiting, approved, then commented", func(t *testing.T) {
		app := testutil.NewApp(now, commands.BookingPolicy{})
		owner := app.MustUser(t, "Owner", "owner@example.com")
		renter := app.MustUser(t, "Renter", "renter@example.com")
		itemID := app.MustItem(t, owner, "Drill", true)

		bookingID := app.MustBooking(t, itemID, renter, 20*time.Minute, 120*time.Minute)
		view, err := app.BookingQ.Get(ctx, bookingID, renter)
		require.NoError(t, err)
		assert.Equal(t, "WAITING", view.Status)

		app.MustDecide(t, bookingID, owner, true)
		view, err = app.BookingQ.Get(ctx, bookingID, owner)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", view.Status)

		app.Clock.Add(3 * time.Hour)
		commentID, err := app.Comments.Add(ctx, itemID, renter, "great item")
		require.NoError(t, err)

		c, err := app.ItemQ.GetComment(ctx, commentID)
		require.NoError(t, err)
		assert.Equal(t, "great item", c.Text)
		assert.Equal(t, "Renter", c.AuthorName)
		assert.Equal(t, app.Clock.Now(), c.Created)
	})

	t.Run("second decision is refused", func(t *testing.T) {
		app := testutil.NewApp(now, commands.BookingPolicy{})
		owner := app.MustUser(t, "Owner", "owner@example.com")
		renter := app.MustUser(t, "Renter", "renter@example.com")
		itemID := app.MustItem(t, owner, "Drill", true)
		bookingID := app.MustBooking(t, itemID, renter, 20*time.Minute, 120*time.Minute)
		app.MustDecide(t, bookingID, owner, true)

		for _, approve := range []bool{true, false} {
			err := app.Bookings.Decide(ctx, bookingID, owner, approve)
			require.ErrorIs(t, err, booking.ErrAlreadyDecided)
			assert.Equal(t, errs.ErrBadRequest, errs.KindOf(err))
		}
		view, err := app.BookingQ.Get(ctx, bookingID, owner)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", view.Status)
	})

	t.Run("unavailable item is not bookable and nothing is stored", func(t *testing.T) {
		app := testutil.NewApp(now, commands.BookingPolicy{})
		owner := app.MustUser(t, "Owner", "owner@example.com")
		renter := app.MustUser(t, "Renter", "renter@example.com")
		itemID := app.MustItem(t, owner, "Drill", false)

		_, err := app.Bookings.Create(ctx, commands.CreateBookingRequest{
			ItemID: itemID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
		}, renter)
		require.ErrorIs(t, err, booking.ErrItemUnavailable)
		assert.Equal(t, errs.ErrBadRequest, errs.KindOf(err))

		views, err := app.BookingQ.ListForBooker(ctx, renter, "ALL", shared.FirstPage())
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("unknown state is unsupported, not bad request", func(t *testing.T) {
		app := testutil.NewApp(now, commands.BookingPolicy{})
		renter := app.MustUser(t, "Renter", "renter@example.com")

		_, err := app.BookingQ.ListForBooker(ctx, renter, "BOGUS", shared.FirstPage())
		require.Error(t, err)
		assert.Equal(t, errs.ErrUnsupportedState, errs.KindOf(err))
		assert.Contains(t, err.Error(), "Unknown state: BOGUS")
	})
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(now, commands.BookingPolicy{})
	owner := app.MustUser(t, "Owner", "owner@example.com")
	renter := app.MustUser(t, "Renter", "renter@example.com")
	available := app.MustItem(t, owner, "Drill", true)
	unavailable := app.MustItem(t, owner, "Saw", false)

	req := func(itemID int64, start, end time.Duration) commands.CreateBookingRequest {
		return commands.CreateBookingRequest{ItemID: itemID, Start: now.Add(start), End: now.Add(end)}
	}

	cases := []struct {
		name     string
		req      commands.CreateBookingRequest
		bookerID int64
		errIs    error
	}{
		{name: "unknown item", req: req(999, time.Hour, 2*time.Hour), bookerID: 999, errIs: shared.ErrItemNotFound},
		{name: "unknown renter", req: req(unavailable, time.Hour, 2*time.Hour), bookerID: 999, errIs: shared.ErrUserNotFound},
		{name: "availability before ownership", req: req(unavailable, time.Hour, 2*time.Hour), bookerID: owner, errIs: booking.ErrItemUnavailable},
		{name: "owner books own item", req: req(available, 2*time.Hour, time.Hour), bookerID: owner, errIs: booking.ErrOwnItem},
		{name: "end equals start", req: req(available, time.Hour, time.Hour), bookerID: renter, errIs: booking.ErrInvalidTimeSlot},
		{name: "end before start", req: req(available, 2*time.Hour, time.Hour), bookerID: renter, errIs: booking.ErrInvalidTimeSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.Bookings.Create(ctx, tc.req, tc.bookerID)
			require.ErrorIs(t, err, tc.errIs)
		})
	}

	t.Run("owner booking own item reads as not found", func(t *testing.T) {
		_, err := app.Bookings.Create(ctx, req(available, time.Hour, 2*time.Hour), owner)
		assert.Equal(t, errs.ErrNotFound, errs.KindOf(err))
	})

	t.Run("creation leaves availability untouched", func(t *testing.T) {
		app.MustBooking(t, available, renter, time.Hour, 2*time.Hour)
		view, err := app.ItemQ.Get(ctx, available, renter)
		require.NoError(t, err)
		assert.True(t, view.Available)
	})
}

func TestDecideBooking(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(now, commands.BookingPolicy{})
	owner := app.MustUser(t, "Owner", "owner@example.com")
	renter := app.MustUser(t, "Renter", "renter@example.com")
	stranger := app.MustUser(t, "Stranger", "stranger@example.com")
	itemID := app.MustItem(t, owner, "Drill", true)
	bookingID := app.MustBooking(t, itemID, renter, time.Hour, 2*time.Hour)

	t.Run("unknown actor", func(t *testing.T) {
		require.ErrorIs(t, app.Bookings.Decide(ctx, bookingID, 999, true), shared.ErrUserNotFound)
	})

	t.Run("unknown booking", func(t *testing.T) {
		require.ErrorIs(t, app.Bookings.Decide(ctx, 999, owner, true), shared.ErrBookingNotFound)
	})

	t.Run("booker and strangers cannot decide", func(t *testing.T) {
		for _, actor := range []int64{renter, stranger} {
			err := app.Bookings.Decide(ctx, bookingID, actor, true)
			require.ErrorIs(t, err, booking.ErrNotItemOwner)
			assert.Equal(t, errs.ErrNotFound, errs.KindOf(err))
		}
	})

	t.Run("strangers cannot read the booking", func(t *testing.T) {
		_, err := app.BookingQ.Get(ctx, bookingID, stranger)
		require.ErrorIs(t, err, shared.ErrBookingNotFound)
	})

	t.Run("rejection is final", func(t *testing.T) {
		app.MustDecide(t, bookingID, owner, false)
		require.ErrorIs(t, app.Bookings.Decide(ctx, bookingID, owner, true), booking.ErrAlreadyDecided)
	})

	t.Run("concurrent decisions have a single winner", func(t *testing.T) {
		app := testutil.NewApp(now, commands.BookingPolicy{RejectOverlappingApprovals: true})
		owner := app.MustUser(t, "Owner", "owner@example.com")
		renter := app.MustUser(t, "Renter", "renter@example.com")
		itemID := app.MustItem(t, owner, "Drill", true)
		id := app.MustBooking(t, itemID, renter, time.Hour, 2*time.Hour)

		results := make([]error, 8)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = app.Bookings.Decide(ctx, id, owner, i%2 == 0)
			}(i)
		}
		wg.Wait()

		var won int
		for _, err := range results {
			if err == nil {
				won++
				continue
			}
			require.ErrorIs(t, err, booking.ErrAlreadyDecided)
		}
		assert.Equal(t, 1, won)
	})
}

func TestOverlapPolicy(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, policy commands.BookingPolicy) (*testutil.App, int64, []int64) {
		app := testutil.NewApp(now, policy)
		owner := app.MustUser(t, "Owner", "owner@example.com")
		a := app.MustUser(t, "A", "a@example.com")
		b := app.MustUser(t, "B", "b@example.com")
		itemID := app.MustItem(t, owner, "Drill", true)
		first := app.MustBooking(t, itemID, a, time.Hour, 3*time.Hour)
		overlapping := app.MustBooking(t, itemID, b, 2*time.Hour, 4*time.Hour)
		adjacent := app.MustBooking(t, itemID, b, 3*time.Hour, 5*time.Hour)
		return app, owner, []int64{first, overlapping, adjacent}
	}

	t.Run("gap preserved by default", func(t *testing.T) {
		app, owner, ids := setup(t, commands.BookingPolicy{})
		for _, id := range ids {
			app.MustDecide(t, id, owner, true)
		}
	})

	t.Run("opt-in policy rejects overlapping approvals", func(t *testing.T) {
		app, owner, ids := setup(t, commands.BookingPolicy{RejectOverlappingApprovals: true})
		app.MustDecide(t, ids[0], owner, true)

		err := app.Bookings.Decide(ctx, ids[1], owner, true)
		require.ErrorIs(t, err, commands.ErrOverlappingApproval)
		assert.Equal(t, errs.ErrBadRequest, errs.KindOf(err))

		view, err := app.BookingQ.Get(ctx, ids[1], owner)
		require.NoError(t, err)
		assert.Equal(t, "WAITING", view.Status, "failed decision must not persist")

		app.MustDecide(t, ids[1], owner, false)
		app.MustDecide(t, ids[2], owner, true)
	})
}
