package shared

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

var (
	ErrUserNotFound    = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrItemNotFound    = errs.Mark(errs.New("item not found"), errs.ErrNotFound)
	ErrBookingNotFound = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrRequestNotFound = errs.Mark(errs.New("item request not found"), errs.ErrNotFound)
	ErrCommentNotFound = errs.Mark(errs.New("comment not found"), errs.ErrNotFound)
)

// The Load helpers translate repository not-found errors into the
// caller-facing sentinels above and pass every other error through.

func LoadUser(ctx context.Context, tx Tx, id int64) (*user.User, error) {
	u, err := tx.Users().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user", id)
	}
	return u, nil
}

func LoadItem(ctx context.Context, tx Tx, id int64) (*item.Item, error) {
	it, err := tx.Items().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrItemNotFound, "item", id)
	}
	return it, nil
}

func LoadBooking(ctx context.Context, tx Tx, id int64) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound, "booking", id)
	}
	return b, nil
}

func LoadRequest(ctx context.Context, tx Tx, id int64) (*request.ItemRequest, error) {
	r, err := tx.Requests().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrRequestNotFound, "item request", id)
	}
	return r, nil
}

func notFound(err, sentinel error, entity string, id int64) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Wrapf(sentinel, "%s id=%d", entity, id)
	}
	return err
}
