// Package memory is a process-local UnitOfWork. Writers are serialized and
// work on a copy of the state that replaces the original only on success,
// so a failed transaction leaves nothing behind.
package memory

import (
	"context"
	"sync"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

var errReadOnly = errs.New("write attempted in read-only transaction")

type userRow struct {
	id    int64
	name  string
	email string
}

type itemRow struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   *int64
}

type bookingRow struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   string
}

type commentRow struct {
	id       int64
	text     string
	itemID   int64
	authorID int64
	created  time.Time
}

type requestRow struct {
	id          int64
	requesterID int64
	description string
	created     time.Time
}

type state struct {
	users    map[int64]userRow
	items    map[int64]itemRow
	bookings map[int64]bookingRow
	comments map[int64]commentRow
	requests map[int64]requestRow

	lastUserID    int64
	lastItemID    int64
	lastBookingID int64
	lastCommentID int64
	lastRequestID int64
}

func newState() *state {
	return &state{
		users:    map[int64]userRow{},
		items:    map[int64]itemRow{},
		bookings: map[int64]bookingRow{},
		comments: map[int64]commentRow{},
		requests: map[int64]requestRow{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.users = cloneMap(s.users)
	c.items = cloneMap(s.items)
	c.bookings = cloneMap(s.bookings)
	c.comments = cloneMap(s.comments)
	c.requests = cloneMap(s.requests)
	return &c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := s.state.clone()
	if err := fn(ctx, &memTx{s: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{s: s.state, readOnly: true})
}

type memTx struct {
	s        *state
	readOnly bool
}

func (t *memTx) writable() error {
	if t.readOnly {
		return infra.WrapRepoErr("memory store", errReadOnly, infra.KindDBFailure)
	}
	return nil
}

func (t *memTx) Users() shared.UserRepository       { return &userRepo{tx: t} }
func (t *memTx) Items() shared.ItemRepository       { return &itemRepo{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepo{tx: t} }
func (t *memTx) Comments() shared.CommentRepository { return &commentRepo{tx: t} }
func (t *memTx) Requests() shared.RequestRepository { return &requestRepo{tx: t} }

// deleteItem drops an item with its bookings and comments.
func (s *state) deleteItem(id int64) {
	delete(s.items, id)
	for bid, b := range s.bookings {
		if b.itemID == id {
			delete(s.bookings, bid)
		}
	}
	for cid, c := range s.comments {
		if c.itemID == id {
			delete(s.comments, cid)
		}
	}
}

// deleteUser mirrors the cascade rules of the relational schema.
func (s *state) deleteUser(id int64) {
	delete(s.users, id)
	for iid, it := range s.items {
		if it.ownerID == id {
			s.deleteItem(iid)
		}
	}
	for bid, b := range s.bookings {
		if b.bookerID == id {
			delete(s.bookings, bid)
		}
	}
	for cid, c := range s.comments {
		if c.authorID == id {
			delete(s.comments, cid)
		}
	}
	for rid, r := range s.requests {
		if r.requesterID != id {
			continue
		}
		delete(s.requests, rid)
		for iid, it := range s.items {
			if it.requestID != nil && *it.requestID == rid {
				it.requestID = nil
				s.items[iid] = it
			}
		}
	}
}

func window[T any](rows []T, page shared.Page) []T {
	if page.From >= len(rows) {
		return nil
	}
	end := page.From + page.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[page.From:end]
}
