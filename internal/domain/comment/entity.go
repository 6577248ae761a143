package comment

import (
	"context"
	"time"

	"shareit/internal/pkg/errs"
)

var ErrNotEligible = errs.Mark(errs.New("user has no completed booking of this item"), errs.ErrBadRequest)

type Author struct {
	ID   int64
	Name string
}

type Comment struct {
	id      int64
	text    Text
	author  Author
	itemID  int64
	created time.Time
}

// NewComment validates the text, then asks the eligibility checker. The
// creation time comes from the services clock.
func NewComment(ctx context.Context, services *Services, author Author, itemID int64, text string) (*Comment, error) {
	t, err := NewText(text)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	ok, err := services.EligibilityChecker.CanComment(ctx, EligibilityInput{
		AuthorID: author.ID,
		ItemID:   itemID,
		Now:      now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEligible
	}

	return &Comment{
		text:    t,
		author:  author,
		itemID:  itemID,
		created: now,
	}, nil
}

func ReconstructComment(id int64, text string, author Author, itemID int64, created time.Time) *Comment {
	return &Comment{
		id:      id,
		text:    Text{value: text},
		author:  author,
		itemID:  itemID,
		created: created,
	}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) Text() Text         { return c.text }
func (c *Comment) Author() Author     { return c.author }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) Created() time.Time { return c.created }
