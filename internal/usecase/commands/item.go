package commands

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/patch"
	"shareit/internal/usecase/shared"
)

type CreateItemRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateItemRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemCommands interface {
	Create(ctx context.Context, req CreateItemRequest, ownerID int64) (int64, error)
	Update(ctx context.Context, itemID int64, req UpdateItemRequest, actorID int64) error
	Delete(ctx context.Context, itemID int64, actorID int64) error
}

type itemCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewItemCommands(uow shared.UnitOfWork) ItemCommands {
	return &itemCommandsImpl{uow: uow}
}

func (uc *itemCommandsImpl) Create(ctx context.Context, req CreateItemRequest, ownerID int64) (int64, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, ownerID); err != nil {
			return err
		}
		if req.RequestID != nil {
			if _, err := shared.LoadRequest(ctx, tx, *req.RequestID); err != nil {
				return err
			}
		}

		it, err := item.NewItem(ownerID, req.Name, req.Description, req.Available, req.RequestID)
		if err != nil {
			return err
		}
		id, err := tx.Items().Create(ctx, it)
		if err != nil {
			return err
		}
		createdID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return createdID, nil
}

func (uc *itemCommandsImpl) Update(ctx context.Context, itemID int64, req UpdateItemRequest, actorID int64) error {
	p := item.Patch{
		Name:        patch.NonBlank(req.Name),
		Description: patch.NonBlank(req.Description),
		Available:   patch.FromPtr(req.Available),
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := shared.LoadItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if err := it.Apply(actorID, p); err != nil {
			return err
		}
		return tx.Items().Update(ctx, it)
	})
}

// Delete removes the item together with its bookings and comments.
func (uc *itemCommandsImpl) Delete(ctx context.Context, itemID int64, actorID int64) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := shared.LoadItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if !it.OwnedBy(actorID) {
			return item.ErrNotOwner
		}
		return tx.Items().Delete(ctx, itemID)
	})
}
