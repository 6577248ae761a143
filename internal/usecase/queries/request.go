package queries

import (
	"context"

	"shareit/internal/domain/request"
	"shareit/internal/usecase/shared"
)

type RequestQueries interface {
	Get(ctx context.Context, requestID int64, viewerID int64) (*ItemRequestView, error)
	// ListOwn is unpaginated, newest first.
	ListOwn(ctx context.Context, viewerID int64) ([]*ItemRequestView, error)
	// ListOthers returns requests made by anyone except the viewer, newest first.
	ListOthers(ctx context.Context, viewerID int64, page shared.Page) ([]*ItemRequestView, error)
}

type requestQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewRequestQueries(uow shared.UnitOfWork) RequestQueries {
	return &requestQueriesImpl{uow: uow}
}

func (q *requestQueriesImpl) Get(ctx context.Context, requestID int64, viewerID int64) (*ItemRequestView, error) {
	var view *ItemRequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, viewerID); err != nil {
			return err
		}
		r, err := shared.LoadRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		views, err := withItems(ctx, tx, []*request.ItemRequest{r})
		if err != nil {
			return err
		}
		view = views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) ListOwn(ctx context.Context, viewerID int64) ([]*ItemRequestView, error) {
	var views []*ItemRequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, viewerID); err != nil {
			return err
		}
		rs, err := tx.Requests().ListByRequester(ctx, viewerID)
		if err != nil {
			return err
		}
		views, err = withItems(ctx, tx, rs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *requestQueriesImpl) ListOthers(ctx context.Context, viewerID int64, page shared.Page) ([]*ItemRequestView, error) {
	var views []*ItemRequestView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, viewerID); err != nil {
			return err
		}
		rs, err := tx.Requests().ListExcept(ctx, viewerID, page)
		if err != nil {
			return err
		}
		views, err = withItems(ctx, tx, rs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// withItems loads the answering items of all requests in one query.
func withItems(ctx context.Context, tx shared.Tx, rs []*request.ItemRequest) ([]*ItemRequestView, error) {
	views := make([]*ItemRequestView, 0, len(rs))
	if len(rs) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(rs))
	byID := make(map[int64]*ItemRequestView, len(rs))
	for _, r := range rs {
		v := newItemRequestView(r)
		views = append(views, v)
		ids = append(ids, r.ID())
		byID[r.ID()] = v
	}

	items, err := tx.Items().ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		rid := it.RequestID()
		if rid == nil {
			continue
		}
		if v, ok := byID[*rid]; ok {
			v.Items = append(v.Items, *newItemView(it))
		}
	}
	return views, nil
}
