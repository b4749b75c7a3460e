package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool with
// the NUMERIC-to-decimal codec registered, and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts test product data and returns the generated IDs in
// insertion order.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []int {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		title    string
		brand    string
		price    string
		category string
		stock    int
	}{
		{"Graphene Tee", "Lab", "19.99", "Apparel", 10},
		{"Canvas Bag", "Lab", "7.50", "Accessories", 5},
		{"Field Notebook", "Paperworks", "4.25", "Stationery", 0},
	}

	ids := make([]int, 0, len(products))
	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			t.Fatalf("bad seed price %s: %v", p.price, err)
		}

		var id int
		err = pool.QueryRow(ctx,
			`INSERT INTO products (title, brand, price, category, available, stock_quantity,
				release_date, create_date)
			 VALUES ($1, $2, $3, $4, TRUE, $5, CURRENT_DATE, CURRENT_DATE) RETURNING id`,
			p.title, p.brand, price, p.category, p.stock,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.title, err)
		}
		ids = append(ids, id)
	}

	return ids
}

// SeedUserWithAddress inserts a user and one address, returning both IDs.
func SeedUserWithAddress(t *testing.T, pool *pgxpool.Pool, email string) (int64, int64) {
	t.Helper()

	ctx := context.Background()

	var userID int64
	err := pool.QueryRow(ctx,
		`INSERT INTO app_users (name, email, phone, password)
		 VALUES ('Ada Lovelace', $1, '0400000000', 'secret') RETURNING id`,
		email,
	).Scan(&userID)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	var addressID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO addresses (street, city, zip_code, user_id)
		 VALUES ('1 Main St', 'Springfield', '12345', $1) RETURNING id`,
		userID,
	).Scan(&addressID)
	if err != nil {
		t.Fatalf("failed to seed address: %v", err)
	}

	return userID, addressID
}

// SeedCoupon inserts a coupon definition.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, code string, pct string, active bool, expiry *model.Date) {
	t.Helper()

	ctx := context.Background()

	discount, err := decimal.NewFromString(pct)
	if err != nil {
		t.Fatalf("bad seed discount %s: %v", pct, err)
	}

	var expiryValue interface{}
	if expiry != nil {
		expiryValue = expiry.Time
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO coupons (code, discount_percentage, active, expiry_date)
		 VALUES ($1, $2, $3, $4)`,
		code, discount, active, expiryValue,
	)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "coupons", "addresses", "app_users", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
