package queries

//go:generate mockgen -destination=../../../tests/mock/queries/mock_queries.go -package=queriesmock . BookingQueries,ItemQueries,RequestQueries,UserQueries

import (
	"context"
	"log/slog"

	"shareit/internal/pkg/metrics"
	"shareit/internal/usecase/shared"
)

type UserQueries interface {
	Get(ctx context.Context, userID int64) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	uow   shared.UnitOfWork
	cache shared.UserCache
}

func NewUserQueries(uow shared.UnitOfWork, cache shared.UserCache) UserQueries {
	return &userQueriesImpl{uow: uow, cache: cache}
}

// Get reads through the user cache. Cache failures fall back to the store.
func (q *userQueriesImpl) Get(ctx context.Context, userID int64) (*UserView, error) {
	cached, ok, err := q.cache.Get(ctx, userID)
	switch {
	case err != nil:
		metrics.UserCacheLookup("error")
		slog.Warn("user cache lookup failed", "user_id", userID, "error", err.Error())
	case ok:
		metrics.UserCacheLookup("hit")
		return &UserView{ID: cached.ID, Name: cached.Name, Email: cached.Email}, nil
	default:
		metrics.UserCacheLookup("miss")
	}

	// the version must be read before the store so a concurrent update wins
	version, verErr := q.cache.Version(ctx, userID)
	if verErr != nil {
		slog.Warn("user cache version lookup failed", "user_id", userID, "error", verErr.Error())
	}

	var view *UserView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := shared.LoadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		view = newUserView(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if verErr == nil {
		if err := q.cache.Fill(ctx, shared.CachedUser{ID: view.ID, Name: view.Name, Email: view.Email}, version); err != nil {
			slog.Warn("user cache fill failed", "user_id", userID, "error", err.Error())
		}
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	var views []*UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return err
		}
		views = make([]*UserView, 0, len(users))
		for _, u := range users {
			views = append(views, newUserView(u))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
