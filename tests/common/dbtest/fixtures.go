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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestProfile(t *testing.T, db DBLike, userID uuid.UUID, displayName, email string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO profiles (user_id, display_name, email) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO NOTHING",
		userID, displayName, email)
	require.NoError(t, err)
}

func CreateTestAddress(t *testing.T, db DBLike, userID uuid.UUID, label string, isDefault bool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO addresses (user_id, label, full_address, is_default) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, label, label+" street 1", isDefault).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestPaymentMethod(t *testing.T, db DBLike, userID uuid.UUID, kind string, last4 *string, isDefault bool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO payment_methods (user_id, kind, last4, is_default) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, kind, last4, isDefault).Scan(&id)
	require.NoError(t, err)
	return id
}

func CountOrders(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM orders WHERE user_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO delivery_fees (domain_type, fee_cents, lead_time_minutes) VALUES
		    ('restaurant', 299, 40),
		    ('market', 499, 90),
		    ('pharmacy', 199, 60),
		    ('personal-care', 399, 120),
		    ('gym', 0, 1)
		ON CONFLICT (domain_type) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
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
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
