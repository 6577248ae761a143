//go:build unit || e2e

package builder

import (
	"shareit/internal/domain/user"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type UserBuilder struct {
	ID    int64
	Name  string
	Email string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    1,
		Name:  "Test User",
		Email: "test@example.com",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	return user.NewUser(u.Name, u.Email)
}

func (u *UserBuilder) BuildStored() *user.User {
	return user.ReconstructUser(u.ID, u.Name, u.Email)
}

func (u *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{Name: u.Name, Email: u.Email}
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id int64) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}
