package item

import (
	"strings"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/patch"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)

var (
	ErrEmptyName          = errs.Mark(errs.New("item name cannot be empty"), errs.ErrBadRequest)
	ErrEmptyDescription   = errs.Mark(errs.New("item description cannot be empty"), errs.ErrBadRequest)
	ErrNameTooLong        = errs.Mark(errs.New("item name exceeds maximum length"), errs.ErrBadRequest)
	ErrDescriptionTooLong = errs.Mark(errs.New("item description exceeds maximum length"), errs.ErrBadRequest)
	ErrNotOwner           = errs.Mark(errs.New("only the owner can modify the item"), errs.ErrPermission)
)

type Item struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

func NewItem(ownerID int64, name, description string, available bool, requestID *int64) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if err := checkLengths(name, description); err != nil {
		return nil, err
	}
	return &Item{
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}, nil
}

func ReconstructItem(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}
}

type Patch struct {
	Name        patch.Optional[string]
	Description patch.Optional[string]
	Available   patch.Optional[bool]
}

// Apply updates the item on behalf of actorID. Blank strings leave the
// corresponding field unchanged.
func (i *Item) Apply(actorID int64, p Patch) error {
	if !i.OwnedBy(actorID) {
		return ErrNotOwner
	}
	name, description := i.name, i.description
	if v, ok := p.Name.Get(); ok && strings.TrimSpace(v) != "" {
		name = strings.TrimSpace(v)
	}
	if v, ok := p.Description.Get(); ok && strings.TrimSpace(v) != "" {
		description = strings.TrimSpace(v)
	}
	if err := checkLengths(name, description); err != nil {
		return err
	}
	i.name, i.description = name, description
	if v, ok := p.Available.Get(); ok {
		i.available = v
	}
	return nil
}

func checkLengths(name, description string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func (i *Item) OwnedBy(userID int64) bool { return i.ownerID == userID }

func (i *Item) ID() int64           { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) RequestID() *int64   { return i.requestID }
