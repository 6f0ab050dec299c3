package sqlite_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
	sqlitestore "github.com/NeCjoi157/rfid-access-gateway/internal/gate/store/sqlite"
)

func employeeRef(id int64) *int64 { return &id }

// ── Append ───────────────────────────────────────────────────────────────────

func TestAuditLedger_Append_AssignsIncreasingIDs(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	var prev int64
	for i := 0; i < 3; i++ {
		id, err := ledger.Append(ctx, store.AccessRecord{
			EmployeeID:  employeeRef(1),
			TurnstileID: 1,
			Timestamp:   1700000000 + int64(i),
			Direction:   store.DirectionIn,
			Granted:     true,
		})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		if id <= prev {
			t.Errorf("expected id > %d, got %d", prev, id)
		}
		prev = id
	}
}

func TestAuditLedger_Append_NullEmployeeForUnknownBadge(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	id, err := ledger.Append(ctx, store.AccessRecord{
		TurnstileID: 1,
		Timestamp:   1700000000,
		Direction:   store.DirectionIn,
		Granted:     false,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	var employeeID any
	err = conn.QueryRowContext(ctx,
		`SELECT employee_id FROM access_logs WHERE id = ?;`, id,
	).Scan(&employeeID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if employeeID != nil {
		t.Errorf("expected NULL employee_id, got %v", employeeID)
	}
}

func TestAuditLedger_Append_RejectsBadDirection(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))

	_, err := ledger.Append(context.Background(), store.AccessRecord{
		TurnstileID: 1,
		Timestamp:   1700000000,
		Direction:   "SIDEWAYS",
		Granted:     false,
	})
	if err == nil {
		t.Fatal("expected CHECK constraint failure for bad direction")
	}
}

func TestAuditLedger_Append_RejectsUnknownTurnstile(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))

	// The service never lets this reach the ledger; the FK is the backstop.
	_, err := ledger.Append(context.Background(), store.AccessRecord{
		TurnstileID: 999,
		Timestamp:   1700000000,
		Direction:   store.DirectionIn,
		Granted:     false,
	})
	if err == nil {
		t.Fatal("expected foreign key failure for unknown turnstile")
	}
}

func TestAuditLedger_Append_ClampsBackwardsTimestamp(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if _, err := ledger.Append(ctx, store.AccessRecord{
		TurnstileID: 1, Timestamp: 1700000100, Direction: store.DirectionIn,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Simulated wall-clock regression.
	id, err := ledger.Append(ctx, store.AccessRecord{
		TurnstileID: 1, Timestamp: 1700000050, Direction: store.DirectionOut,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	var ts int64
	if err := conn.QueryRowContext(ctx,
		`SELECT timestamp FROM access_logs WHERE id = ?;`, id,
	).Scan(&ts); err != nil {
		t.Fatalf("query: %v", err)
	}
	if ts != 1700000100 {
		t.Errorf("expected timestamp clamped to 1700000100, got %d", ts)
	}
}

func TestAuditLedger_Append_ConcurrentIDsUniqueAndIncreasing(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := ledger.Append(ctx, store.AccessRecord{
				EmployeeID:  employeeRef(1),
				TurnstileID: 1,
				Timestamp:   1700000000,
				Direction:   store.DirectionIn,
				Granted:     true,
			})
			if err != nil {
				t.Errorf("Append: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d unique ids, got %d", n, len(seen))
	}
}

// ── Recent ───────────────────────────────────────────────────────────────────

func TestAuditLedger_Recent_NewestFirstWithJoins(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	// Granted swipe, then an unknown-badge denial one second later.
	if _, err := ledger.Append(ctx, store.AccessRecord{
		EmployeeID: employeeRef(1), TurnstileID: 1, Timestamp: 1700000000,
		Direction: store.DirectionIn, Granted: true,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := ledger.Append(ctx, store.AccessRecord{
		TurnstileID: 2, Timestamp: 1700000001,
		Direction: store.DirectionIn, Granted: false,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	recs, err := ledger.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	// Newest first.
	if recs[0].Timestamp != 1700000001 || recs[1].Timestamp != 1700000000 {
		t.Errorf("expected newest-first order, got %d then %d", recs[0].Timestamp, recs[1].Timestamp)
	}

	denial := recs[0]
	if denial.FullName != nil {
		t.Errorf("expected nil employee fields on denial, got %v", *denial.FullName)
	}
	if denial.TurnstileName != "Warehouse Entrance" {
		t.Errorf("expected turnstile join, got %q", denial.TurnstileName)
	}

	grant := recs[1]
	if grant.FullName == nil || *grant.FullName != "Ivan Ivanov" {
		t.Errorf("expected employee join, got %v", grant.FullName)
	}
	if grant.Position == nil || *grant.Position != "Director" {
		t.Errorf("expected position join, got %v", grant.Position)
	}
}

func TestAuditLedger_Recent_SameSecondOrderedByID(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		id, err := ledger.Append(ctx, store.AccessRecord{
			EmployeeID: employeeRef(1), TurnstileID: 1, Timestamp: 1700000000,
			Direction: store.DirectionIn, Granted: true,
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		last = id
	}

	recs, err := ledger.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].ID != last {
		t.Errorf("expected highest id first within the same second, got %d", recs[0].ID)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].ID >= recs[i-1].ID {
			t.Errorf("expected strictly decreasing ids, got %d then %d", recs[i-1].ID, recs[i].ID)
		}
	}
}

func TestAuditLedger_Recent_LimitRespected(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := ledger.Append(ctx, store.AccessRecord{
			EmployeeID: employeeRef(1), TurnstileID: 1,
			Timestamp: 1700000000 + int64(i),
			Direction: store.DirectionIn, Granted: true,
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recs, err := ledger.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("expected 2 records, got %d", len(recs))
	}
}

func TestAuditLedger_Recent_ReadIdempotent(t *testing.T) {
	conn := openTestDB(t)
	seedReference(t, conn)
	ledger := sqlitestore.NewAuditLedger(conn, newTestWriter(t, conn))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := ledger.Append(ctx, store.AccessRecord{
			EmployeeID: employeeRef(1), TurnstileID: 1,
			Timestamp: 1700000000 + int64(i),
			Direction: store.DirectionIn, Granted: true,
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	first, err := ledger.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	second, err := ledger.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results from two reads without intervening appends")
	}
}
