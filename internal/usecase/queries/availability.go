package queries

import (
	"context"
	"time"

	"shareit/internal/usecase/shared"
)

type Availability struct {
	Last *BookingShort
	Next *BookingShort
}

// AvailabilityProjector computes an item's last and next APPROVED bookings
// relative to now. A booking starting exactly at now is neither.
type AvailabilityProjector struct{}

func NewAvailabilityProjector() *AvailabilityProjector {
	return &AvailabilityProjector{}
}

func (p *AvailabilityProjector) Project(ctx context.Context, bookings shared.BookingRepository, itemID int64, now time.Time) (Availability, error) {
	last, err := bookings.FindLastApproved(ctx, itemID, now)
	if err != nil {
		return Availability{}, err
	}
	next, err := bookings.FindNextApproved(ctx, itemID, now)
	if err != nil {
		return Availability{}, err
	}
	return Availability{Last: newBookingShort(last), Next: newBookingShort(next)}, nil
}
