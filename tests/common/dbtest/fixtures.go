//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, name, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id", name, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestItem(t *testing.T, db DBLike, ownerID int64, name string, available bool) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO items (name, description, available, owner_id) VALUES ($1, $2, $3, $4) RETURNING id",
		name, name+" for rent", available, ownerID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestBooking inserts a booking as is, bypassing the start-in-the-past
// check of the API so that completed bookings can be seeded.
func CreateTestBooking(t *testing.T, db DBLike, itemID, bookerID int64, start, end time.Time, status string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO bookings (start_date, end_date, item_id, booker_id, status) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		start, end, itemID, bookerID, status).Scan(&id)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and restarts identities
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
