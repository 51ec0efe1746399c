package testutil

// Package testutil holds shared helpers for integration tests that need
// live Redis or Postgres. Tests skip when the backing service is absent
// unless TEST_REQUIRE_INFRA is truthy (CI).

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB these helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Cleanup(func())
	Fatal(args ...interface{})
	Logf(format string, args ...interface{})
}

// SetupTestRedis returns a Redis client for testing, skipping the test
// when Redis is not reachable.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{Addr: addr, DB: testRedisDB()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("close redis client after ping failure: %v", cerr)
		}
		if requireInfra() {
			t.Fatal("Redis not available for testing:", err)
		}
		t.Skip("Redis not available for testing:", err)
	}
	return client
}

// SetupTestDB returns a Postgres connection for testing, skipping the
// test when the database is not reachable.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	hostPort := net.JoinHostPort(
		getEnvOrDefault("TEST_DB_HOST", "localhost"),
		getEnvOrDefault("TEST_DB_PORT", "55432"),
	)
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		getEnvOrDefault("TEST_DB_USER", "storez"),
		getEnvOrDefault("TEST_DB_PASSWORD", "storez"),
		hostPort,
		getEnvOrDefault("TEST_DB_NAME", "storez"),
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatal("Failed to open database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if cerr := db.Close(); cerr != nil {
			t.Logf("close db after ping failure: %v", cerr)
		}
		if requireInfra() {
			t.Fatal("Test database not available:", pingErr)
		}
		t.Skip("Test database not available:", pingErr)
	}

	t.Cleanup(func() {
		if cerr := db.Close(); cerr != nil {
			t.Logf("close test db: %v", cerr)
		}
	})
	return db
}

func requireInfra() bool {
	v, err := strconv.ParseBool(os.Getenv("TEST_REQUIRE_INFRA"))
	return err == nil && v
}

// testRedisDB returns the Redis DB index used for tests. A non-default
// index keeps test keys away from any local development data.
func testRedisDB() int {
	if v, err := strconv.Atoi(os.Getenv("TEST_REDIS_DB")); err == nil {
		return v
	}
	return 9
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
