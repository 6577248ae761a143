//go:build unit

package booking_test

import (
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"
	"shareit/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewBooking(t *testing.T) {
	item := booking.ItemRef{ID: 1, Name: "Drill", OwnerID: 1, Available: true}
	booker := booking.BookerRef{ID: 2, Name: "Booker"}
	start, end := base.Add(time.Hour), base.Add(2*time.Hour)

	t.Run("starts WAITING", func(t *testing.T) {
		b, err := booking.NewBooking(item, booker, start, end)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaiting, b.Status())
		assert.Equal(t, start, b.Slot().Start())
		assert.Equal(t, end, b.Slot().End())
	})

	cases := []struct {
		name       string
		item       booking.ItemRef
		booker     booking.BookerRef
		start, end time.Time
		errIs      error
		kind       error
	}{
		{
			name: "unavailable item", item: booking.ItemRef{ID: 1, OwnerID: 1}, booker: booker,
			start: start, end: end, errIs: booking.ErrItemUnavailable, kind: errs.ErrBadRequest,
		},
		{
			name: "owner books own item", item: item, booker: booking.BookerRef{ID: 1},
			start: start, end: end, errIs: booking.ErrOwnItem, kind: errs.ErrNotFound,
		},
		{
			name: "end equals start", item: item, booker: booker,
			start: start, end: start, errIs: booking.ErrInvalidTimeSlot, kind: errs.ErrBadRequest,
		},
		{
			name: "end before start", item: item, booker: booker,
			start: end, end: start, errIs: booking.ErrInvalidTimeSlot, kind: errs.ErrBadRequest,
		},
		{
			name: "unavailable is reported before ownership", item: booking.ItemRef{ID: 1, OwnerID: 1}, booker: booking.BookerRef{ID: 1},
			start: end, end: start, errIs: booking.ErrItemUnavailable, kind: errs.ErrBadRequest,
		},
		{
			name: "ownership is reported before the window", item: item, booker: booking.BookerRef{ID: 1},
			start: end, end: start, errIs: booking.ErrOwnItem, kind: errs.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := booking.NewBooking(tc.item, tc.booker, tc.start, tc.end)
			require.Nil(t, b)
			require.ErrorIs(t, err, tc.errIs)
			assert.Equal(t, tc.kind, errs.KindOf(err))
		})
	}
}

func TestDecide(t *testing.T) {
	waiting := func() *booking.Booking {
		return builder.NewBookingBuilder(base).WithItem(1, 1).WithBooker(2).BuildStored()
	}

	t.Run("owner approves", func(t *testing.T) {
		b := waiting()
		require.NoError(t, b.Decide(1, true))
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("owner rejects", func(t *testing.T) {
		b := waiting()
		require.NoError(t, b.Decide(1, false))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		b := waiting()
		err := b.Decide(2, true)
		require.ErrorIs(t, err, booking.ErrNotItemOwner)
		assert.Equal(t, errs.ErrNotFound, errs.KindOf(err))
		assert.Equal(t, booking.StatusWaiting, b.Status())
	})

	t.Run("decision is final", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusApproved, booking.StatusRejected} {
			b := builder.NewBookingBuilder(base).WithItem(1, 1).WithStatus(status).BuildStored()
			require.ErrorIs(t, b.Decide(1, true), booking.ErrAlreadyDecided)
			require.ErrorIs(t, b.Decide(1, false), booking.ErrAlreadyDecided)
			assert.Equal(t, status, b.Status())
		}
	})
}

func TestVisibleTo(t *testing.T) {
	b := builder.NewBookingBuilder(base).WithItem(1, 1).WithBooker(2).BuildStored()
	assert.True(t, b.VisibleTo(1))
	assert.True(t, b.VisibleTo(2))
	assert.False(t, b.VisibleTo(3))
}

func TestTimeSlot(t *testing.T) {
	slot, err := booking.NewTimeSlot(base, base.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, slot.Contains(base), "start is inclusive")
	assert.False(t, slot.Contains(base.Add(time.Hour)), "end is exclusive")
	assert.True(t, slot.EndedBefore(base.Add(2*time.Hour)))
	assert.False(t, slot.EndedBefore(base.Add(time.Hour)))
	assert.True(t, slot.StartsAfter(base.Add(-time.Second)))
	assert.False(t, slot.StartsAfter(base))
	assert.False(t, slot.StartedBefore(base))

	adjacent, _ := booking.NewTimeSlot(base.Add(time.Hour), base.Add(2*time.Hour))
	inside, _ := booking.NewTimeSlot(base.Add(10*time.Minute), base.Add(20*time.Minute))
	assert.False(t, slot.Overlaps(adjacent), "touching windows do not overlap")
	assert.True(t, slot.Overlaps(inside))
	assert.True(t, inside.Overlaps(slot))
}

func TestParseState(t *testing.T) {
	for _, name := range []string{"ALL", "current", "Past", "FUTURE", "waiting", "REJECTED"} {
		t.Run(name, func(t *testing.T) {
			_, err := booking.ParseState(name)
			assert.NoError(t, err)
		})
	}

	state, err := booking.ParseState("future")
	require.NoError(t, err)
	assert.Equal(t, booking.StateFuture, state)
	assert.Equal(t, "FUTURE", state.String())

	_, err = booking.ParseState("UNSUPPORTED_STATUS")
	require.Error(t, err)
	assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", err.Error())
	assert.Equal(t, errs.ErrUnsupportedState, errs.KindOf(err))
}
