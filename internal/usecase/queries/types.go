package queries

import (
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
)

type UserView struct {
	ID    int64
	Name  string
	Email string
}

type BookerView struct {
	ID   int64
	Name string
}

type ItemSummaryView struct {
	ID   int64
	Name string
}

type BookingView struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Status string
	Booker BookerView
	Item   ItemSummaryView
}

// BookingShort is the owner-only annotation of an item listing.
type BookingShort struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

type CommentView struct {
	ID         int64
	Text       string
	AuthorName string
	Created    time.Time
}

type ItemView struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
	LastBooking *BookingShort
	NextBooking *BookingShort
	Comments    []CommentView
}

type ItemRequestView struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
	Items       []ItemView
}

func newUserView(u *user.User) *UserView {
	return &UserView{ID: u.ID(), Name: u.Name(), Email: u.Email().Value()}
}

func newBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:     b.ID(),
		Start:  b.Slot().Start(),
		End:    b.Slot().End(),
		Status: b.Status().String(),
		Booker: BookerView{ID: b.Booker().ID, Name: b.Booker().Name},
		Item:   ItemSummaryView{ID: b.Item().ID, Name: b.Item().Name},
	}
}

func newBookingViews(bs []*booking.Booking) []*BookingView {
	views := make([]*BookingView, 0, len(bs))
	for _, b := range bs {
		views = append(views, newBookingView(b))
	}
	return views
}

func newBookingShort(b *booking.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID(),
		BookerID: b.Booker().ID,
		Start:    b.Slot().Start(),
		End:      b.Slot().End(),
	}
}

func newCommentView(c *comment.Comment) CommentView {
	return CommentView{
		ID:         c.ID(),
		Text:       c.Text().String(),
		AuthorName: c.Author().Name,
		Created:    c.Created(),
	}
}

func newItemView(it *item.Item) *ItemView {
	return &ItemView{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.OwnerID(),
		RequestID:   it.RequestID(),
		Comments:    []CommentView{},
	}
}

func newItemRequestView(r *request.ItemRequest) *ItemRequestView {
	return &ItemRequestView{
		ID:          r.ID(),
		Description: r.Description(),
		RequesterID: r.RequesterID(),
		Created:     r.Created(),
		Items:       []ItemView{},
	}
}
