package request

import (
	"shareit/internal/usecase/commands"
)

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=512"`
}

func (r *CreateUserRequest) ToCommand() commands.CreateUserRequest {
	return commands.CreateUserRequest{Name: r.Name, Email: r.Email}
}

// UpdateUserRequest is a partial update. Blank fields are ignored.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Email *string `json:"email" binding:"omitempty,email,max=512"`
}

func (r *UpdateUserRequest) ToCommand() commands.UpdateUserRequest {
	return commands.UpdateUserRequest{Name: r.Name, Email: r.Email}
}
