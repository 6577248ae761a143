package commands

//go:generate mockgen -destination=../../../tests/mock/commands/mock_commands.go -package=commandsmock . BookingCommands,CommentCommands,ItemCommands,RequestCommands,UserCommands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/patch"
	"shareit/internal/usecase/shared"
)

var ErrEmailBusy = errs.Mark(errs.New("email is already in use"), errs.ErrEmailBusy)

type CreateUserRequest struct {
	Name  string
	Email string
}

// UpdateUserRequest fields are replaced only when non-nil and non-blank.
type UpdateUserRequest struct {
	Name  *string
	Email *string
}

type UserCommands interface {
	Create(ctx context.Context, req CreateUserRequest) (int64, error)
	Update(ctx context.Context, userID int64, req UpdateUserRequest) error
	Delete(ctx context.Context, userID int64) error
}

type userCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.UserCache
}

func NewUserCommands(uow shared.UnitOfWork, cache shared.UserCache) UserCommands {
	return &userCommandsImpl{uow: uow, cache: cache}
}

func (uc *userCommandsImpl) Create(ctx context.Context, req CreateUserRequest) (int64, error) {
	u, err := user.NewUser(req.Name, req.Email)
	if err != nil {
		return 0, err
	}

	var createdID int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureEmailFree(ctx, tx, u.Email().Value(), 0); err != nil {
			return err
		}
		id, err := tx.Users().Create(ctx, u)
		if err != nil {
			return translateDuplicateEmail(err)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return createdID, nil
}

func (uc *userCommandsImpl) Update(ctx context.Context, userID int64, req UpdateUserRequest) error {
	p := user.Patch{
		Name:  patch.NonBlank(req.Name),
		Email: patch.NonBlank(req.Email),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := shared.LoadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if email, ok := p.Email.Get(); ok {
			if err := ensureEmailFree(ctx, tx, email, userID); err != nil {
				return err
			}
		}
		if err := u.Apply(p); err != nil {
			return err
		}
		return translateDuplicateEmail(tx.Users().Update(ctx, u))
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, userID)
	return nil
}

func (uc *userCommandsImpl) Delete(ctx context.Context, userID int64) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, userID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, userID)
	return nil
}

// A stale cache entry only delays visibility of the change, so failures are logged.
func (uc *userCommandsImpl) invalidate(ctx context.Context, userID int64) {
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("user cache invalidation failed", "user_id", userID, "error", err.Error())
	}
}

func ensureEmailFree(ctx context.Context, tx shared.Tx, email string, exceptID int64) error {
	taken, err := tx.Users().ExistsByEmailExcept(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return errs.Wrapf(ErrEmailBusy, "email=%s", email)
	}
	return nil
}

func translateDuplicateEmail(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.Mark(err, ErrEmailBusy)
	}
	return err
}
