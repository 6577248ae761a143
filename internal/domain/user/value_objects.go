package user

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
)

const (
	MaxNameLength  = 255
	MaxEmailLength = 512
)

var (
	ErrInvalidEmail = errs.Mark(errs.New("invalid email format"), errs.ErrBadRequest)
	ErrEmailTooLong = errs.Mark(errs.New("email exceeds maximum length"), errs.ErrBadRequest)
	ErrEmptyName    = errs.Mark(errs.New("name cannot be empty"), errs.ErrBadRequest)
	ErrNameTooLong  = errs.Mark(errs.New("name exceeds maximum length"), errs.ErrBadRequest)
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxEmailLength {
		return Email{}, ErrEmailTooLong
	}
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func newName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return s, nil
}
