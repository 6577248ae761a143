package user

import "shareit/internal/pkg/patch"

type User struct {
	id    int64
	name  string
	email Email
}

// NewUser builds an unsaved user; the store assigns the id.
func NewUser(name, email string) (*User, error) {
	n, err := newName(name)
	if err != nil {
		return nil, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &User{name: n, email: e}, nil
}

func ReconstructUser(id int64, name, email string) *User {
	return &User{id: id, name: name, email: Email{value: email}}
}

type Patch struct {
	Name  patch.Optional[string]
	Email patch.Optional[string]
}

// Apply replaces the fields present in p. A blank value counts as absent.
func (u *User) Apply(p Patch) error {
	if v, ok := p.Name.Get(); ok {
		n, err := newName(v)
		if err != nil {
			return err
		}
		u.name = n
	}
	if v, ok := p.Email.Get(); ok {
		e, err := NewEmail(v)
		if err != nil {
			return err
		}
		u.email = e
	}
	return nil
}

func (u *User) ID() int64    { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() Email { return u.email }
