package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Users() UserRepository
	Items() ItemRepository
	Bookings() BookingRepository
	Comments() CommentRepository
	Requests() RequestRepository
}

// Lookups by id fail with an infra.KindNotFound error when the row is missing.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (int64, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	ExistsByEmailExcept(ctx context.Context, email string, exceptID int64) (bool, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (int64, error)
	Update(ctx context.Context, it *item.Item) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	// Lock serializes writers that depend on the item's bookings.
	Lock(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]*item.Item, error)
	// Search matches text case-insensitively against name or description of available items.
	Search(ctx context.Context, text string, page Page) ([]*item.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*item.Item, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (int64, error)
	// UpdateStatus moves a WAITING booking to status and fails with
	// booking.ErrAlreadyDecided when it is no longer WAITING.
	UpdateStatus(ctx context.Context, id int64, status booking.Status) error
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*booking.Booking, error)
	// FindNextApproved returns nil when no APPROVED booking starts after now.
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error)
	// FindLastApproved returns nil when no APPROVED booking started before now.
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error)
	ExistsCompletedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	ExistsApprovedOverlap(ctx context.Context, itemID, excludeID int64, slot booking.TimeSlot) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (int64, error)
	FindByID(ctx context.Context, id int64) (*comment.Comment, error)
	ListByItem(ctx context.Context, itemID int64) ([]*comment.Comment, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.ItemRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (*request.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*request.ItemRequest, error)
	ListExcept(ctx context.Context, requesterID int64, page Page) ([]*request.ItemRequest, error)
}
