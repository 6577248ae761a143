package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var (
	ErrItemUnavailable = errs.Mark(errs.New("item is not available for booking"), errs.ErrBadRequest)
	ErrOwnItem         = errs.Mark(errs.New("item not found"), errs.ErrNotFound)
	ErrNotItemOwner    = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrAlreadyDecided  = errs.Mark(errs.New("booking has already been decided"), errs.ErrBadRequest)
)

// ItemRef is the item as seen when the booking was made.
type ItemRef struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

type BookerRef struct {
	ID   int64
	Name string
}

type Booking struct {
	id     int64
	slot   TimeSlot
	status Status
	booker BookerRef
	item   ItemRef
}

// NewBooking checks availability, then ownership, then the window. The order
// decides which error a caller sees when several rules are broken.
func NewBooking(item ItemRef, booker BookerRef, start, end time.Time) (*Booking, error) {
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	if item.OwnerID == booker.ID {
		return nil, ErrOwnItem
	}
	ts, err := NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}
	return &Booking{
		slot:   ts,
		status: StatusWaiting,
		booker: booker,
		item:   item,
	}, nil
}

func ReconstructBooking(id int64, slot TimeSlot, status Status, booker BookerRef, item ItemRef) *Booking {
	return &Booking{
		id:     id,
		slot:   slot,
		status: status,
		booker: booker,
		item:   item,
	}
}

// Decide moves a WAITING booking to APPROVED or REJECTED. Non-owners get a
// not-found error so the booking's existence is not confirmed to them.
func (b *Booking) Decide(actorID int64, approve bool) error {
	if b.item.OwnerID != actorID {
		return ErrNotItemOwner
	}
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approve {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) VisibleTo(userID int64) bool {
	return b.booker.ID == userID || b.item.OwnerID == userID
}

func (b *Booking) ID() int64         { return b.id }
func (b *Booking) Slot() TimeSlot    { return b.slot }
func (b *Booking) Status() Status    { return b.status }
func (b *Booking) Booker() BookerRef { return b.booker }
func (b *Booking) Item() ItemRef     { return b.item }
