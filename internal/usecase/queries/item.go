package queries

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

type ItemQueries interface {
	// Get attaches last/next bookings only when viewerID owns the item.
	Get(ctx context.Context, itemID int64, viewerID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, page shared.Page) ([]*ItemView, error)
	Search(ctx context.Context, text string, page shared.Page) ([]*ItemView, error)
	GetComment(ctx context.Context, commentID int64) (*CommentView, error)
}

type itemQueriesImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	projector *AvailabilityProjector
}

func NewItemQueries(uow shared.UnitOfWork, clk clock.Clock, projector *AvailabilityProjector) ItemQueries {
	return &itemQueriesImpl{uow: uow, clock: clk, projector: projector}
}

func (q *itemQueriesImpl) Get(ctx context.Context, itemID int64, viewerID int64) (*ItemView, error) {
	var view *ItemView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := shared.LoadItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		view, err = q.detailed(ctx, tx, it, it.OwnedBy(viewerID), q.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, page shared.Page) ([]*ItemView, error) {
	var views []*ItemView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, ownerID); err != nil {
			return err
		}
		items, err := tx.Items().ListByOwner(ctx, ownerID, page)
		if err != nil {
			return err
		}
		now := q.clock.Now()
		views = make([]*ItemView, 0, len(items))
		for _, it := range items {
			v, err := q.detailed(ctx, tx, it, true, now)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string, page shared.Page) ([]*ItemView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*ItemView{}, nil
	}

	var views []*ItemView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.Items().Search(ctx, text, page)
		if err != nil {
			return err
		}
		views = make([]*ItemView, 0, len(items))
		for _, it := range items {
			views = append(views, newItemView(it))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *itemQueriesImpl) GetComment(ctx context.Context, commentID int64) (*CommentView, error) {
	var view CommentView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Comments().FindByID(ctx, commentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(shared.ErrCommentNotFound, "comment id=%d", commentID)
			}
			return err
		}
		view = newCommentView(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *itemQueriesImpl) detailed(ctx context.Context, tx shared.Tx, it *item.Item, withBookings bool, now time.Time) (*ItemView, error) {
	view := newItemView(it)

	comments, err := tx.Comments().ListByItem(ctx, it.ID())
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, newCommentView(c))
	}

	if withBookings {
		availability, err := q.projector.Project(ctx, tx.Bookings(), it.ID(), now)
		if err != nil {
			return nil, err
		}
		view.LastBooking = availability.Last
		view.NextBooking = availability.Next
	}
	return view, nil
}
