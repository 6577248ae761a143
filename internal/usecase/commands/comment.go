package commands

import (
	"context"

	"shareit/internal/domain/comment"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/metrics"
	"shareit/internal/usecase/shared"
)

type CommentCommands interface {
	Add(ctx context.Context, itemID int64, authorID int64, text string) (int64, error)
	CanComment(ctx context.Context, itemID int64, userID int64) (bool, error)
}

type commentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCommentCommands(uow shared.UnitOfWork, clk clock.Clock) CommentCommands {
	return &commentCommandsImpl{uow: uow, clock: clk}
}

func (uc *commentCommandsImpl) Add(ctx context.Context, itemID int64, authorID int64, text string) (int64, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		author, err := shared.LoadUser(ctx, tx, authorID)
		if err != nil {
			return err
		}
		if _, err := shared.LoadItem(ctx, tx, itemID); err != nil {
			return err
		}

		services := &comment.Services{
			Clock:              uc.clock,
			EligibilityChecker: bookingEligibility{bookings: tx.Bookings()},
		}
		c, err := comment.NewComment(ctx, services, comment.Author{ID: author.ID(), Name: author.Name()}, itemID, text)
		if err != nil {
			return err
		}

		id, err := tx.Comments().Create(ctx, c)
		if err != nil {
			return err
		}
		createdID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.CommentAdded()
	return createdID, nil
}

func (uc *commentCommandsImpl) CanComment(ctx context.Context, itemID int64, userID int64) (bool, error) {
	var allowed bool
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := bookingEligibility{bookings: tx.Bookings()}.CanComment(ctx, comment.EligibilityInput{
			AuthorID: userID,
			ItemID:   itemID,
			Now:      uc.clock.Now(),
		})
		allowed = ok
		return err
	})
	return allowed, err
}

// bookingEligibility implements comment.EligibilityChecker over the
// transaction's booking repository.
type bookingEligibility struct {
	bookings shared.BookingRepository
}

func (e bookingEligibility) CanComment(ctx context.Context, input comment.EligibilityInput) (bool, error) {
	return e.bookings.ExistsCompletedApproved(ctx, input.ItemID, input.AuthorID, input.Now)
}
