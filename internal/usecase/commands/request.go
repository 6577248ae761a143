package commands

import (
	"context"

	"shareit/internal/domain/request"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/shared"
)

type RequestCommands interface {
	Create(ctx context.Context, description string, requesterID int64) (int64, error)
}

type requestCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRequestCommands(uow shared.UnitOfWork, clk clock.Clock) RequestCommands {
	return &requestCommandsImpl{uow: uow, clock: clk}
}

func (uc *requestCommandsImpl) Create(ctx context.Context, description string, requesterID int64) (int64, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadUser(ctx, tx, requesterID); err != nil {
			return err
		}
		r, err := request.NewItemRequest(requesterID, description, uc.clock.Now())
		if err != nil {
			return err
		}
		id, err := tx.Requests().Create(ctx, r)
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
