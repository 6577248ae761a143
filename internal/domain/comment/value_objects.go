package comment

import (
	"strings"

	"shareit/internal/pkg/errs"
)

const MaxTextLength = 1000

var (
	ErrEmptyText   = errs.Mark(errs.New("comment text cannot be empty"), errs.ErrBadRequest)
	ErrTextTooLong = errs.Mark(errs.New("comment exceeds maximum length"), errs.ErrBadRequest)
)

type Text struct {
	value string
}

func NewText(s string) (Text, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Text{}, ErrEmptyText
	}
	if len([]rune(t)) > MaxTextLength {
		return Text{}, ErrTextTooLong
	}
	return Text{value: t}, nil
}

func (t Text) String() string { return t.value }
