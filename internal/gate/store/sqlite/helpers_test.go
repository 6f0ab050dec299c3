package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/NeCjoi157/rfid-access-gateway/internal/db"
)

// openTestDB returns an in-memory SQLite connection with the same PRAGMAs
// and schema as production. The connection is closed automatically when the
// test finishes.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each call gets a unique in-memory database. The shared-cache URI keeps
	// the database alive for the lifetime of the connection pool.
	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		t.Name(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}

	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestWriter returns a db.Worker backed by conn, closed automatically
// when the test finishes.
func newTestWriter(t *testing.T, conn *sql.DB) *db.Worker {
	t.Helper()

	w := db.NewWorker(conn)
	t.Cleanup(func() { w.Close() })
	return w
}

// seedReference inserts a small employee/turnstile catalog so audit rows
// have something to reference.
func seedReference(t *testing.T, conn *sql.DB) {
	t.Helper()
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `
INSERT INTO employees(id, badge_code, full_name, position, department, phone)
VALUES (1, 'RFID-1001', 'Ivan Ivanov', 'Director', 'Administration', '+79161000101'),
       (2, 'RFID-1003', 'Alexey Sidorov', 'Engineer', 'IT', NULL);`)
	if err != nil {
		t.Fatalf("seedReference employees: %v", err)
	}

	_, err = conn.ExecContext(ctx, `
INSERT INTO turnstiles(id, name, location)
VALUES (1, 'Main Entrance', 'Central Hall'),
       (2, 'Warehouse Entrance', 'Building B, Floor 1');`)
	if err != nil {
		t.Fatalf("seedReference turnstiles: %v", err)
	}
}
