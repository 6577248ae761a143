package queries

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

type BookingQueries interface {
	Get(ctx context.Context, bookingID int64, userID int64) (*BookingView, error)
	// ListForBooker and ListForOwner accept the state filter by name; an
	// unknown name fails with errs.ErrUnsupportedState.
	ListForBooker(ctx context.Context, bookerID int64, state string, page shared.Page) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, page shared.Page) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{uow: uow, clock: clk}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, bookingID int64, userID int64) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, userID); err != nil {
			return err
		}
		b, err := shared.LoadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !b.VisibleTo(userID) {
			return errs.Wrapf(shared.ErrBookingNotFound, "booking id=%d", bookingID)
		}
		view = newBookingView(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID int64, state string, page shared.Page) ([]*BookingView, error) {
	return q.list(ctx, shared.PartyBooker, bookerID, state, page)
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID int64, state string, page shared.Page) ([]*BookingView, error) {
	return q.list(ctx, shared.PartyOwner, ownerID, state, page)
}

func (q *bookingQueriesImpl) list(ctx context.Context, party shared.BookingParty, userID int64, rawState string, page shared.Page) ([]*BookingView, error) {
	state, err := booking.ParseState(rawState)
	if err != nil {
		return nil, err
	}

	var views []*BookingView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, userID); err != nil {
			return err
		}
		bs, err := tx.Bookings().List(ctx, shared.BookingFilter{
			Party:  party,
			UserID: userID,
			State:  state,
			Now:    q.clock.Now(),
			Page:   page,
		})
		if err != nil {
			return err
		}
		views = newBookingViews(bs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
