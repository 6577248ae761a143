package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

// -----------------------------------------------------------------------------
// Users
// -----------------------------------------------------------------------------

type userRepo struct {
	tx *memTx
}

func (r *userRepo) Create(_ context.Context, u *user.User) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	s := r.tx.s
	if s.emailTaken(u.Email().Value(), 0) {
		return 0, infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	s.lastUserID++
	s.users[s.lastUserID] = userRow{id: s.lastUserID, name: u.Name(), email: u.Email().Value()}
	return s.lastUserID, nil
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	s := r.tx.s
	if _, ok := s.users[u.ID()]; !ok {
		return infra.NotFound("user not found")
	}
	if s.emailTaken(u.Email().Value(), u.ID()) {
		return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	s.users[u.ID()] = userRow{id: u.ID(), name: u.Name(), email: u.Email().Value()}
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.s.users[id]; !ok {
		return infra.NotFound("user not found")
	}
	r.tx.s.deleteUser(id)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	row, ok := r.tx.s.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return toUser(row), nil
}

func (r *userRepo) List(_ context.Context) ([]*user.User, error) {
	rows := sortedByID(r.tx.s.users, func(u userRow) int64 { return u.id })
	users := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUser(row))
	}
	return users, nil
}

func (r *userRepo) ExistsByEmailExcept(_ context.Context, email string, exceptID int64) (bool, error) {
	return r.tx.s.emailTaken(email, exceptID), nil
}

func (s *state) emailTaken(email string, exceptID int64) bool {
	for _, u := range s.users {
		if u.email == email && u.id != exceptID {
			return true
		}
	}
	return false
}

func toUser(row userRow) *user.User {
	return user.ReconstructUser(row.id, row.name, row.email)
}

// -----------------------------------------------------------------------------
// Items
// -----------------------------------------------------------------------------

type itemRepo struct {
	tx *memTx
}

func (r *itemRepo) Create(_ context.Context, it *item.Item) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	s := r.tx.s
	if err := s.checkItemRefs(it); err != nil {
		return 0, err
	}
	s.lastItemID++
	s.items[s.lastItemID] = toItemRow(s.lastItemID, it)
	return s.lastItemID, nil
}

func (r *itemRepo) Update(_ context.Context, it *item.Item) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	s := r.tx.s
	if _, ok := s.items[it.ID()]; !ok {
		return infra.NotFound("item not found")
	}
	if err := s.checkItemRefs(it); err != nil {
		return err
	}
	s.items[it.ID()] = toItemRow(it.ID(), it)
	return nil
}

func (r *itemRepo) Delete(_ context.Context, id int64) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.s.items[id]; !ok {
		return infra.NotFound("item not found")
	}
	r.tx.s.deleteItem(id)
	return nil
}

func (r *itemRepo) FindByID(_ context.Context, id int64) (*item.Item, error) {
	row, ok := r.tx.s.items[id]
	if !ok {
		return nil, infra.NotFound("item not found")
	}
	return toItem(row), nil
}

// Lock only checks existence; write transactions already hold the store lock.
func (r *itemRepo) Lock(_ context.Context, id int64) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.s.items[id]; !ok {
		return infra.NotFound("item not found")
	}
	return nil
}

func (r *itemRepo) ListByOwner(_ context.Context, ownerID int64, page shared.Page) ([]*item.Item, error) {
	return r.filter(page, func(it itemRow) bool { return it.ownerID == ownerID }), nil
}

func (r *itemRepo) Search(_ context.Context, text string, page shared.Page) ([]*item.Item, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	return r.filter(page, func(it itemRow) bool {
		return it.available &&
			(strings.Contains(strings.ToLower(it.name), needle) ||
				strings.Contains(strings.ToLower(it.description), needle))
	}), nil
}

func (r *itemRepo) ListByRequestIDs(_ context.Context, requestIDs []int64) ([]*item.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	return r.filter(shared.Page{From: 0, Size: len(r.tx.s.items)}, func(it itemRow) bool {
		return it.requestID != nil && slices.Contains(requestIDs, *it.requestID)
	}), nil
}

func (r *itemRepo) filter(page shared.Page, keep func(itemRow) bool) []*item.Item {
	var matched []itemRow
	for _, row := range sortedByID(r.tx.s.items, func(it itemRow) int64 { return it.id }) {
		if keep(row) {
			matched = append(matched, row)
		}
	}
	rows := window(matched, page)
	items := make([]*item.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, toItem(row))
	}
	return items
}

func (s *state) checkItemRefs(it *item.Item) error {
	if _, ok := s.users[it.OwnerID()]; !ok {
		return infra.WrapRepoErr("item owner does not exist", nil, infra.KindForeignKeyViolated)
	}
	if rid := it.RequestID(); rid != nil {
		if _, ok := s.requests[*rid]; !ok {
			return infra.WrapRepoErr("item request does not exist", nil, infra.KindForeignKeyViolated)
		}
	}
	return nil
}

func toItemRow(id int64, it *item.Item) itemRow {
	return itemRow{
		id:          id,
		ownerID:     it.OwnerID(),
		name:        it.Name(),
		description: it.Description(),
		available:   it.Available(),
		requestID:   it.RequestID(),
	}
}

func toItem(row itemRow) *item.Item {
	return item.ReconstructItem(row.id, row.ownerID, row.name, row.description, row.available, row.requestID)
}

// -----------------------------------------------------------------------------
// Bookings
// -----------------------------------------------------------------------------

type bookingRepo struct {
	tx *memTx
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	s := r.tx.s
	if _, ok := s.items[b.Item().ID]; !ok {
		return 0, infra.WrapRepoErr("booked item does not exist", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := s.users[b.Booker().ID]; !ok {
		return 0, infra.WrapRepoErr("booker does not exist", nil, infra.KindForeignKeyViolated)
	}
	s.lastBookingID++
	s.bookings[s.lastBookingID] = bookingRow{
		id:       s.lastBookingID,
		start:    b.Slot().Start(),
		end:      b.Slot().End(),
		itemID:   b.Item().ID,
		bookerID: b.Booker().ID,
		status:   b.Status().String(),
	}
	return s.lastBookingID, nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id int64, status booking.Status) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.s.bookings[id]
	if !ok {
		return infra.NotFound("booking not found")
	}
	if row.status != booking.StatusWaiting.String() {
		return errs.Wrapf(booking.ErrAlreadyDecided, "booking id=%d", id)
	}
	row.status = status.String()
	r.tx.s.bookings[id] = row
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id int64) (*booking.Booking, error) {
	row, ok := r.tx.s.bookings[id]
	if !ok {
		return nil, infra.NotFound("booking not found")
	}
	return r.tx.s.toBooking(row)
}

func (r *bookingRepo) List(_ context.Context, filter shared.BookingFilter) ([]*booking.Booking, error) {
	s := r.tx.s
	var matched []bookingRow
	for _, row := range s.bookings {
		if !s.partyMatches(row, filter) || !stateMatches(row, filter.State, filter.Now) {
			continue
		}
		matched = append(matched, row)
	}
	slices.SortFunc(matched, func(a, b bookingRow) int {
		if c := b.start.Compare(a.start); c != 0 {
			return c
		}
		return cmp.Compare(b.id, a.id)
	})
	return s.toBookings(window(matched, filter.Page))
}

func (r *bookingRepo) FindNextApproved(_ context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	var best *bookingRow
	for _, row := range r.tx.s.approvedFor(itemID) {
		row := row
		if !row.start.After(now) {
			continue
		}
		if best == nil || row.start.Before(best.start) || (row.start.Equal(best.start) && row.id < best.id) {
			best = &row
		}
	}
	if best == nil {
		return nil, nil
	}
	return r.tx.s.toBooking(*best)
}

func (r *bookingRepo) FindLastApproved(_ context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	var best *bookingRow
	for _, row := range r.tx.s.approvedFor(itemID) {
		row := row
		if !row.start.Before(now) {
			continue
		}
		if best == nil || row.start.After(best.start) || (row.start.Equal(best.start) && row.id > best.id) {
			best = &row
		}
	}
	if best == nil {
		return nil, nil
	}
	return r.tx.s.toBooking(*best)
}

func (r *bookingRepo) ExistsCompletedApproved(_ context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	for _, row := range r.tx.s.approvedFor(itemID) {
		if row.bookerID == bookerID && row.end.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepo) ExistsApprovedOverlap(_ context.Context, itemID, excludeID int64, slot booking.TimeSlot) (bool, error) {
	for _, row := range r.tx.s.approvedFor(itemID) {
		if row.id != excludeID && row.start.Before(slot.End()) && row.end.After(slot.Start()) {
			return true, nil
		}
	}
	return false, nil
}

func (s *state) approvedFor(itemID int64) []bookingRow {
	var rows []bookingRow
	for _, row := range s.bookings {
		if row.itemID == itemID && row.status == booking.StatusApproved.String() {
			rows = append(rows, row)
		}
	}
	return rows
}

func (s *state) partyMatches(row bookingRow, filter shared.BookingFilter) bool {
	if filter.Party == shared.PartyOwner {
		it, ok := s.items[row.itemID]
		return ok && it.ownerID == filter.UserID
	}
	return row.bookerID == filter.UserID
}

func stateMatches(row bookingRow, state booking.State, now time.Time) bool {
	switch state {
	case booking.StateCurrent:
		return !row.start.After(now) && row.end.After(now)
	case booking.StatePast:
		return row.end.Before(now)
	case booking.StateFuture:
		return row.start.After(now)
	case booking.StateWaiting:
		return row.status == booking.StatusWaiting.String()
	case booking.StateRejected:
		return row.status == booking.StatusRejected.String()
	default:
		return true
	}
}

func (s *state) toBookings(rows []bookingRow) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := s.toBooking(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *state) toBooking(row bookingRow) (*booking.Booking, error) {
	it, ok := s.items[row.itemID]
	if !ok {
		return nil, infra.WrapRepoErr("booking references a missing item", nil, infra.KindDBFailure)
	}
	booker, ok := s.users[row.bookerID]
	if !ok {
		return nil, infra.WrapRepoErr("booking references a missing booker", nil, infra.KindDBFailure)
	}
	if !booking.Status(row.status).IsValid() {
		return nil, infra.WrapRepoErr("stored booking has an unknown status", nil, infra.KindDBFailure)
	}
	slot, err := booking.NewTimeSlot(row.start, row.end)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has an invalid window", err, infra.KindDBFailure)
	}
	return booking.ReconstructBooking(
		row.id,
		slot,
		booking.Status(row.status),
		booking.BookerRef{ID: booker.id, Name: booker.name},
		booking.ItemRef{ID: it.id, Name: it.name, OwnerID: it.ownerID, Available: it.available},
	), nil
}

// -----------------------------------------------------------------------------
// Comments
// -----------------------------------------------------------------------------

type commentRepo struct {
	tx *memTx
}

func (r *commentRepo) Create(_ context.Context, c *comment.Comment) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	s := r.tx.s
	if _, ok := s.items[c.ItemID()]; !ok {
		return 0, infra.WrapRepoErr("commented item does not exist", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := s.users[c.Author().ID]; !ok {
		return 0, infra.WrapRepoErr("comment author does not exist", nil, infra.KindForeignKeyViolated)
	}
	s.lastCommentID++
	s.comments[s.lastCommentID] = commentRow{
		id:       s.lastCommentID,
		text:     c.Text().String(),
		itemID:   c.ItemID(),
		authorID: c.Author().ID,
		created:  c.Created(),
	}
	return s.lastCommentID, nil
}

func (r *commentRepo) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	row, ok := r.tx.s.comments[id]
	if !ok {
		return nil, infra.NotFound("comment not found")
	}
	return r.tx.s.toComment(row), nil
}

func (r *commentRepo) ListByItem(_ context.Context, itemID int64) ([]*comment.Comment, error) {
	var rows []commentRow
	for _, row := range r.tx.s.comments {
		if row.itemID == itemID {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b commentRow) int {
		if c := a.created.Compare(b.created); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	out := make([]*comment.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.tx.s.toComment(row))
	}
	return out, nil
}

func (s *state) toComment(row commentRow) *comment.Comment {
	author := comment.Author{ID: row.authorID}
	if u, ok := s.users[row.authorID]; ok {
		author.Name = u.name
	}
	return comment.ReconstructComment(row.id, row.text, author, row.itemID, row.created)
}

// -----------------------------------------------------------------------------
// Item requests
// -----------------------------------------------------------------------------

type requestRepo struct {
	tx *memTx
}

func (r *requestRepo) Create(_ context.Context, req *request.ItemRequest) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	s := r.tx.s
	if _, ok := s.users[req.RequesterID()]; !ok {
		return 0, infra.WrapRepoErr("requester does not exist", nil, infra.KindForeignKeyViolated)
	}
	s.lastRequestID++
	s.requests[s.lastRequestID] = requestRow{
		id:          s.lastRequestID,
		requesterID: req.RequesterID(),
		description: req.Description(),
		created:     req.Created(),
	}
	return s.lastRequestID, nil
}

func (r *requestRepo) FindByID(_ context.Context, id int64) (*request.ItemRequest, error) {
	row, ok := r.tx.s.requests[id]
	if !ok {
		return nil, infra.NotFound("item request not found")
	}
	return toRequest(row), nil
}

func (r *requestRepo) ListByRequester(_ context.Context, requesterID int64) ([]*request.ItemRequest, error) {
	rows := r.newestFirst(func(row requestRow) bool { return row.requesterID == requesterID })
	return toRequests(rows), nil
}

func (r *requestRepo) ListExcept(_ context.Context, requesterID int64, page shared.Page) ([]*request.ItemRequest, error) {
	rows := r.newestFirst(func(row requestRow) bool { return row.requesterID != requesterID })
	return toRequests(window(rows, page)), nil
}

func (r *requestRepo) newestFirst(keep func(requestRow) bool) []requestRow {
	var rows []requestRow
	for _, row := range r.tx.s.requests {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b requestRow) int {
		if c := b.created.Compare(a.created); c != 0 {
			return c
		}
		return cmp.Compare(b.id, a.id)
	})
	return rows
}

func toRequests(rows []requestRow) []*request.ItemRequest {
	out := make([]*request.ItemRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRequest(row))
	}
	return out
}

func toRequest(row requestRow) *request.ItemRequest {
	return request.ReconstructItemRequest(row.id, row.requesterID, row.description, row.created)
}

func sortedByID[T any](m map[int64]T, id func(T) int64) []T {
	rows := make([]T, 0, len(m))
	for _, v := range m {
		rows = append(rows, v)
	}
	slices.SortFunc(rows, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return rows
}
