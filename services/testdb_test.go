package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"gymDeskAPI/migrations"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL, applying
// migrations first. Tests that need it are skipped when the variable is unset
// so the pure unit tests still run anywhere.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	require.NoError(t, migrations.Up(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))

	t.Cleanup(pool.Close)
	return pool
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func createTestMember(t *testing.T, pool *pgxpool.Pool, active bool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO members (member_code, first_name, last_name, is_active)
		VALUES ($1, 'Test', 'Member', $2)
		RETURNING id
	`, uuid.New().String(), active).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM members WHERE id = $1`, id)
	})
	return id
}

func createTestPlan(t *testing.T, pool *pgxpool.Pool, maxVisits *int) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO membership_plans (name, duration_days, price, max_visits)
		VALUES ($1, 30, 49.99, $2)
		RETURNING id
	`, "Test Plan "+uuid.New().String(), maxVisits).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM membership_plans WHERE id = $1`, id)
	})
	return id
}

func createTestSubscription(t *testing.T, pool *pgxpool.Pool, memberID, planID uuid.UUID, endDate time.Time, remaining *int) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO member_subscriptions (member_id, plan_id, end_date, status, remaining_visits, price)
		VALUES ($1, $2, $3, 'active', $4, 49.99)
		RETURNING id
	`, memberID, planID, endDate, remaining).Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestProduct(t *testing.T, pool *pgxpool.Pool, stock int, price float64) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO products (name, category, sku, price, stock_quantity)
		VALUES ('Test Product', 'supplements', $1, $2, $3)
		RETURNING id
	`, "TEST-"+uuid.New().String(), price, stock).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM sale_items WHERE product_id = $1`, id)
		_, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	})
	return id
}
