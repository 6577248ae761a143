package request

import (
	"strings"
	"time"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
)

const MaxDescriptionLength = 1000

var (
	ErrEmptyDescription   = errs.Mark(errs.New("request description cannot be empty"), errs.ErrBadRequest)
	ErrDescriptionTooLong = errs.Mark(errs.New("request description exceeds maximum length"), errs.ErrBadRequest)
)

// ItemRequest is a user's public ask for an item nobody has listed yet.
type ItemRequest struct {
	id          int64
	description string
	requesterID int64
	created     time.Time
}

func NewItemRequest(requesterID int64, description string, now time.Time) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return &ItemRequest{
		description: description,
		requesterID: requesterID,
		created:     now,
	}, nil
}

func ReconstructItemRequest(id, requesterID int64, description string, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requesterID: requesterID,
		created:     created,
	}
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequesterID() int64  { return r.requesterID }
func (r *ItemRequest) Created() time.Time  { return r.created }
