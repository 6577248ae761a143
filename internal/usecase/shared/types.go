package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrInvalidPage = errs.Mark(errs.New("from must be >= 0 and size must be >= 1"), errs.ErrBadRequest)

// Page is offset paging: skip From rows, return at most Size.
type Page struct {
	From int
	Size int
}

func NewPage(from, size int) (Page, error) {
	if from < 0 || size < 1 {
		return Page{}, ErrInvalidPage
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{From: from, Size: size}, nil
}

func FirstPage() Page {
	return Page{From: 0, Size: DefaultPageSize}
}

type BookingParty int

const (
	PartyBooker BookingParty = iota
	PartyOwner
)

// BookingFilter selects one user's bookings, as booker or as item owner.
type BookingFilter struct {
	Party  BookingParty
	UserID int64
	State  booking.State
	Now    time.Time
	Page   Page
}

type CachedUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserCache fronts Directory user lookups. Implementations must tolerate
// Invalidate on ids that were never cached.
//
// A reader takes Version before loading the user from the store and hands it
// to Fill. Fill is a no-op when Invalidate ran in between, so a slow reader
// cannot put back a value that a write already replaced.
type UserCache interface {
	Get(ctx context.Context, id int64) (*CachedUser, bool, error)
	Version(ctx context.Context, id int64) (int64, error)
	Fill(ctx context.Context, u CachedUser, version int64) error
	Invalidate(ctx context.Context, id int64) error
}
