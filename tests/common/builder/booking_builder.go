//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/handler/dto"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type BookingBuilder struct {
	ID         int64
	ItemID     int64
	ItemName   string
	OwnerID    int64
	BookerID   int64
	BookerName string
	Start      time.Time
	End        time.Time
	Status     booking.Status
}

// NewBookingBuilder defaults to a WAITING booking starting an hour after base.
func NewBookingBuilder(base time.Time) *BookingBuilder {
	return &BookingBuilder{
		ID:         1,
		ItemID:     1,
		ItemName:   "Drill",
		OwnerID:    1,
		BookerID:   2,
		BookerName: "Booker",
		Start:      base.Add(time.Hour),
		End:        base.Add(2 * time.Hour),
		Status:     booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) itemRef() booking.ItemRef {
	return booking.ItemRef{ID: b.ItemID, Name: b.ItemName, OwnerID: b.OwnerID, Available: true}
}

func (b *BookingBuilder) bookerRef() booking.BookerRef {
	return booking.BookerRef{ID: b.BookerID, Name: b.BookerName}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(b.itemRef(), b.bookerRef(), b.Start, b.End)
}

// BuildStored skips validation so tests can reconstruct any persisted state.
func (b *BookingBuilder) BuildStored() *booking.Booking {
	slot, err := booking.NewTimeSlot(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return booking.ReconstructBooking(b.ID, slot, b.Status, b.bookerRef(), b.itemRef())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	start := dto.NewLocalDateTime(b.Start)
	end := dto.NewLocalDateTime(b.End)
	return reqdto.CreateBookingRequest{ItemID: b.ItemID, Start: &start, End: &end}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status.String(),
		Booker: queries.BookerView{ID: b.BookerID, Name: b.BookerName},
		Item:   queries.ItemSummaryView{ID: b.ItemID, Name: b.ItemName},
	}
}

func (b *BookingBuilder) WithID(id int64) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithItem(itemID, ownerID int64) *BookingBuilder {
	b.ItemID = itemID
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithBooker(bookerID int64) *BookingBuilder {
	b.BookerID = bookerID
	return b
}

func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}
