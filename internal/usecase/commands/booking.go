package commands

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/metrics"
	"shareit/internal/usecase/shared"
)

var ErrOverlappingApproval = errs.Mark(errs.New("item is already booked for an overlapping period"), errs.ErrBadRequest)

type CreateBookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// BookingPolicy holds optional rules on top of the booking lifecycle.
type BookingPolicy struct {
	// RejectOverlappingApprovals refuses to approve a booking whose window
	// overlaps another APPROVED booking of the same item.
	RejectOverlappingApprovals bool
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, bookerID int64) (int64, error)
	Decide(ctx context.Context, bookingID int64, actorID int64, approve bool) error
}

type bookingCommandsImpl struct {
	uow    shared.UnitOfWork
	policy BookingPolicy
}

func NewBookingCommands(uow shared.UnitOfWork, policy BookingPolicy) BookingCommands {
	return &bookingCommandsImpl{uow: uow, policy: policy}
}

func (uc *bookingCommandsImpl) Create(ctx context.Context, req CreateBookingRequest, bookerID int64) (int64, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := shared.LoadItem(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}
		booker, err := shared.LoadUser(ctx, tx, bookerID)
		if err != nil {
			return err
		}

		b, err := booking.NewBooking(
			booking.ItemRef{ID: it.ID(), Name: it.Name(), OwnerID: it.OwnerID(), Available: it.Available()},
			booking.BookerRef{ID: booker.ID(), Name: booker.Name()},
			req.Start, req.End,
		)
		if err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			return err
		}
		createdID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.BookingCreated()
	return createdID, nil
}

func (uc *bookingCommandsImpl) Decide(ctx context.Context, bookingID int64, actorID int64, approve bool) error {
	var decided booking.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, actorID); err != nil {
			return err
		}
		b, err := shared.LoadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := b.Decide(actorID, approve); err != nil {
			return err
		}

		if b.Status() == booking.StatusApproved && uc.policy.RejectOverlappingApprovals {
			if err := tx.Items().Lock(ctx, b.Item().ID); err != nil {
				return err
			}
			overlap, err := tx.Bookings().ExistsApprovedOverlap(ctx, b.Item().ID, b.ID(), b.Slot())
			if err != nil {
				return err
			}
			if overlap {
				return ErrOverlappingApproval
			}
		}

		decided = b.Status()
		return tx.Bookings().UpdateStatus(ctx, b.ID(), b.Status())
	})
	if err != nil {
		return err
	}
	metrics.BookingDecided(decided.String())
	return nil
}
