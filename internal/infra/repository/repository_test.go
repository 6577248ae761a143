//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDBTX struct {
	mock.Mock
}

func (m *mockDBTX) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *mockDBTX) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *mockDBTX) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// rowFunc adapts a scan function to pgx.Row.
type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

func errRow(err error) pgx.Row {
	return rowFunc(func(...any) error { return err })
}

func idRow(id int64) pgx.Row {
	return rowFunc(func(dest ...any) error {
		*(dest[0].(*int64)) = id
		return nil
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	tests := []struct {
		name     string
		row      pgx.Row
		wantKind infra.RepositoryErrorKind
		wantName string
	}{
		{
			name: "success",
			row: rowFunc(func(dest ...any) error {
				*(dest[0].(*int64)) = 7
				*(dest[1].(*string)) = "Alice"
				*(dest[2].(*string)) = "alice@example.com"
				return nil
			}),
			wantName: "Alice",
		},
		{
			name:     "not found",
			row:      errRow(pgx.ErrNoRows),
			wantKind: infra.KindNotFound,
		},
		{
			name:     "database error",
			row:      errRow(assert.AnError),
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockDBTX)
			db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(tt.row)

			u, err := NewUserRepository(db).FindByID(context.Background(), 7)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), u.ID())
			assert.Equal(t, tt.wantName, u.Name())
			db.AssertExpectations(t)
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	u, err := user.NewUser("Alice", "alice@example.com")
	require.NoError(t, err)

	t.Run("success returns generated id", func(t *testing.T) {
		db := new(mockDBTX)
		db.On("QueryRow", mock.Anything, mock.MatchedBy(func(q string) bool {
			return assert.Contains(t, q, `INSERT INTO "users"`) && assert.Contains(t, q, `RETURNING "id"`)
		}), mock.Anything).Return(idRow(42))

		id, err := NewUserRepository(db).Create(context.Background(), u)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("unique violation is a duplicate key", func(t *testing.T) {
		db := new(mockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(errRow(&pgconn.PgError{Code: "23505"}))

		_, err := NewUserRepository(db).Create(context.Background(), u)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db := new(mockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := NewUserRepository(db).Update(context.Background(), user.ReconstructUser(3, "Bob", "bob@example.com"))

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestUserRepository_ExistsByEmailExcept(t *testing.T) {
	tests := []struct {
		name string
		row  pgx.Row
		want bool
	}{
		{name: "taken", row: rowFunc(func(dest ...any) error { *(dest[0].(*int)) = 1; return nil }), want: true},
		{name: "free", row: errRow(pgx.ErrNoRows), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockDBTX)
			db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(tt.row)

			got, err := NewUserRepository(db).ExistsByEmailExcept(context.Background(), "a@b.c", 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingRepository_FindNextApproved_NoMatch(t *testing.T) {
	db := new(mockDBTX)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow(pgx.ErrNoRows))

	b, err := NewBookingRepository(db).FindNextApproved(context.Background(), 1, time.Now())

	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestUpdateStatusQuery_OnlyMovesWaiting(t *testing.T) {
	query, args, err := updateStatusQuery(4, booking.StatusApproved).ToSQL()

	require.NoError(t, err)
	assert.Contains(t, query, `UPDATE "bookings" SET "status"=$1`)
	assert.Contains(t, query, `"id" = $2`)
	assert.Contains(t, query, `"status" = $3`)
	assert.Equal(t, []interface{}{"APPROVED", int64(4), "WAITING"}, args)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		tag     pgconn.CommandTag
		execErr error
		wantErr error
		wantDB  bool
	}{
		{name: "waiting booking is updated", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "already decided booking", tag: pgconn.NewCommandTag("UPDATE 0"), wantErr: booking.ErrAlreadyDecided},
		{name: "database error", tag: pgconn.CommandTag{}, execErr: assert.AnError, wantDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockDBTX)
			db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(tt.tag, tt.execErr)

			err := NewBookingRepository(db).UpdateStatus(context.Background(), 4, booking.StatusRejected)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.wantErr))
			case tt.wantDB:
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			default:
				require.NoError(t, err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_FindByID_UnknownStatus(t *testing.T) {
	db := new(mockDBTX)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(rowFunc(func(dest ...any) error {
		*(dest[0].(*int64)) = 4
		*(dest[3].(*string)) = "BOGUS"
		return nil
	}))

	b, err := NewBookingRepository(db).FindByID(context.Background(), 4)

	require.Error(t, err)
	assert.Nil(t, b)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	assert.Contains(t, err.Error(), "BOGUS")
}

func TestLockItemQuery(t *testing.T) {
	query, args, err := lockItemQuery(9).ToSQL()

	require.NoError(t, err)
	assert.Contains(t, query, `"id" = $1`)
	assert.Contains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(9)}, args)
}

func TestItemRepository_Lock_NotFound(t *testing.T) {
	db := new(mockDBTX)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow(pgx.ErrNoRows))

	err := NewItemRepository(db).Lock(context.Background(), 9)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestListBookingsQuery(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	page := shared.Page{From: 20, Size: 10}

	tests := []struct {
		name      string
		filter    shared.BookingFilter
		contains  []string
		excludes  []string
		wantFirst int64
	}{
		{
			name:     "booker all",
			filter:   shared.BookingFilter{Party: shared.PartyBooker, UserID: 5, State: booking.StateAll, Now: now, Page: page},
			contains: []string{`"b"."booker_id" = $1`},
			excludes: []string{`"i"."owner_id"`, `"b"."status" =`},
		},
		{
			name:     "owner current",
			filter:   shared.BookingFilter{Party: shared.PartyOwner, UserID: 5, State: booking.StateCurrent, Now: now, Page: page},
			contains: []string{`"i"."owner_id" = $1`, `"b"."start_date" <= $2`, `"b"."end_date" > $3`},
		},
		{
			name:     "booker past",
			filter:   shared.BookingFilter{Party: shared.PartyBooker, UserID: 5, State: booking.StatePast, Now: now, Page: page},
			contains: []string{`"b"."end_date" < $2`},
		},
		{
			name:     "booker future",
			filter:   shared.BookingFilter{Party: shared.PartyBooker, UserID: 5, State: booking.StateFuture, Now: now, Page: page},
			contains: []string{`"b"."start_date" > $2`},
		},
		{
			name:     "owner waiting",
			filter:   shared.BookingFilter{Party: shared.PartyOwner, UserID: 5, State: booking.StateWaiting, Now: now, Page: page},
			contains: []string{`"b"."status" = $2`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := listBookingsQuery(tt.filter).ToSQL()

			require.NoError(t, err)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.excludes {
				assert.NotContains(t, query, fragment)
			}
			assert.Contains(t, query, `ORDER BY "b"."start_date" DESC, "b"."id" DESC`)
			assert.Contains(t, query, "LIMIT")
			assert.Contains(t, query, "OFFSET")
			assert.EqualValues(t, 5, args[0])
		})
	}
}

func TestSearchItemsQuery(t *testing.T) {
	query, args, err := searchItemsQuery("  Drill ", shared.Page{From: 0, Size: 10}).ToSQL()

	require.NoError(t, err)
	assert.Contains(t, query, `"available" IS TRUE`)
	assert.Contains(t, query, `"name" ILIKE`)
	assert.Contains(t, query, `"description" ILIKE`)
	assert.Contains(t, args, "%Drill%")
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "drill", want: "%drill%"},
		{in: "50%", want: `%50\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `c:\`, want: `%c:\\%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.in))
		})
	}
}
