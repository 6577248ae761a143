package repository

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const bookingsTable = "bookings"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	row, err := queryRow(ctx, r.db, dialect.Insert(bookingsTable).
		Rows(goqu.Record{
			"start_date": b.Slot().Start(),
			"end_date":   b.Slot().End(),
			"item_id":    b.Item().ID,
			"booker_id":  b.Booker().ID,
			"status":     b.Status().String(),
		}).
		Returning("id").
		Prepared(true))
	if err != nil {
		return 0, err
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// UpdateStatus only moves a WAITING booking. A concurrent decision that
// committed first leaves zero rows to update.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status booking.Status) error {
	tag, err := execute(ctx, r.db, updateStatusQuery(id, status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(booking.ErrAlreadyDecided, "booking id=%d", id)
	}
	return nil
}

func updateStatusQuery(id int64, status booking.Status) *goqu.UpdateDataset {
	return dialect.Update(bookingsTable).
		Set(goqu.Record{"status": status.String()}).
		Where(
			goqu.C("id").Eq(id),
			goqu.C("status").Eq(booking.StatusWaiting.String()),
		).
		Prepared(true)
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	row, err := queryRow(ctx, r.db, selectBookings().Where(goqu.I("b.id").Eq(id)))
	if err != nil {
		return nil, err
	}
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter shared.BookingFilter) ([]*booking.Booking, error) {
	rows, err := queryRows(ctx, r.db, listBookingsQuery(filter))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return bookings, nil
}

func (r *BookingRepository) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	return r.findOne(ctx, nextApprovedQuery(itemID, now))
}

func (r *BookingRepository) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	return r.findOne(ctx, lastApprovedQuery(itemID, now))
}

func (r *BookingRepository) ExistsCompletedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	return exists(ctx, r.db, dialect.From(bookingsTable).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("booker_id").Eq(bookerID),
			goqu.C("status").Eq(booking.StatusApproved.String()),
			goqu.C("end_date").Lt(now),
		).
		Prepared(true))
}

func (r *BookingRepository) ExistsApprovedOverlap(ctx context.Context, itemID, excludeID int64, slot booking.TimeSlot) (bool, error) {
	return exists(ctx, r.db, dialect.From(bookingsTable).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("id").Neq(excludeID),
			goqu.C("status").Eq(booking.StatusApproved.String()),
			goqu.C("start_date").Lt(slot.End()),
			goqu.C("end_date").Gt(slot.Start()),
		).
		Prepared(true))
}

// findOne returns nil without error when the query matches nothing.
func (r *BookingRepository) findOne(ctx context.Context, ds *goqu.SelectDataset) (*booking.Booking, error) {
	row, err := queryRow(ctx, r.db, ds.Limit(1))
	if err != nil {
		return nil, err
	}
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func selectBookings() *goqu.SelectDataset {
	return dialect.From(goqu.T(bookingsTable).As("b")).
		Join(goqu.T(itemsTable).As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			"b.id", "b.start_date", "b.end_date", "b.status",
			"b.booker_id", "u.name",
			"b.item_id", "i.name", "i.owner_id", "i.available",
		).
		Prepared(true)
}

// listBookingsQuery orders by start descending with id as the tie breaker.
func listBookingsQuery(filter shared.BookingFilter) *goqu.SelectDataset {
	party := goqu.I("b.booker_id").Eq(filter.UserID)
	if filter.Party == shared.PartyOwner {
		party = goqu.I("i.owner_id").Eq(filter.UserID)
	}

	conds := []exp.Expression{party}
	conds = append(conds, stateConditions(filter.State, filter.Now)...)

	return paged(selectBookings().
		Where(conds...).
		Order(goqu.I("b.start_date").Desc(), goqu.I("b.id").Desc()), filter.Page)
}

func stateConditions(state booking.State, now time.Time) []exp.Expression {
	switch state {
	case booking.StateCurrent:
		return []exp.Expression{goqu.I("b.start_date").Lte(now), goqu.I("b.end_date").Gt(now)}
	case booking.StatePast:
		return []exp.Expression{goqu.I("b.end_date").Lt(now)}
	case booking.StateFuture:
		return []exp.Expression{goqu.I("b.start_date").Gt(now)}
	case booking.StateWaiting:
		return []exp.Expression{goqu.I("b.status").Eq(booking.StatusWaiting.String())}
	case booking.StateRejected:
		return []exp.Expression{goqu.I("b.status").Eq(booking.StatusRejected.String())}
	default:
		return nil
	}
}

func nextApprovedQuery(itemID int64, now time.Time) *goqu.SelectDataset {
	return selectBookings().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(booking.StatusApproved.String()),
			goqu.I("b.start_date").Gt(now),
		).
		Order(goqu.I("b.start_date").Asc(), goqu.I("b.id").Asc())
}

func lastApprovedQuery(itemID int64, now time.Time) *goqu.SelectDataset {
	return selectBookings().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(booking.StatusApproved.String()),
			goqu.I("b.start_date").Lt(now),
		).
		Order(goqu.I("b.start_date").Desc(), goqu.I("b.id").Desc())
}

func scanBooking(row scanner) (*booking.Booking, error) {
	var (
		id         int64
		start, end time.Time
		status     string
		booker     booking.BookerRef
		it         booking.ItemRef
	)
	if err := row.Scan(
		&id, &start, &end, &status,
		&booker.ID, &booker.Name,
		&it.ID, &it.Name, &it.OwnerID, &it.Available,
	); err != nil {
		return nil, err
	}
	if !booking.Status(status).IsValid() {
		return nil, errs.Newf("booking %d has unknown status %q", id, status)
	}
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(id, slot, booking.Status(status), booker, it), nil
}
