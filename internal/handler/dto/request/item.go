package request

import (
	"shareit/internal/usecase/commands"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=1000"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

func (r *CreateItemRequest) ToCommand() commands.CreateItemRequest {
	return commands.CreateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
		RequestID:   r.RequestID,
	}
}

type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Available   *bool   `json:"available"`
}

func (r *UpdateItemRequest) ToCommand() commands.UpdateItemRequest {
	return commands.UpdateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required,max=1000"`
}
