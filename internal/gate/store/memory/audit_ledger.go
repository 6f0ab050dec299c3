package memory

import (
	"context"
	"sync"
	"time"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
)

// AuditLedger is an in-memory append-only audit trail for tests and dev
// environments. It mirrors the sqlite ledger's semantics: monotonically
// increasing ids and non-decreasing stored timestamps.
type AuditLedger struct {
	refs *ReferenceStore

	mu      sync.Mutex
	nextID  int64
	lastTS  int64
	records []store.AccessRecordDetail
}

// NewAuditLedger enriches appended records against refs, the way the sqlite
// ledger joins reference data at query time. Reference data is immutable
// during operation, so resolving at append time is equivalent.
func NewAuditLedger(refs *ReferenceStore) *AuditLedger {
	return &AuditLedger{refs: refs, nextID: 1}
}

func (l *AuditLedger) Append(ctx context.Context, rec store.AccessRecord) (int64, error) {
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UTC().Unix()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.Timestamp < l.lastTS {
		rec.Timestamp = l.lastTS
	}
	l.lastTS = rec.Timestamp

	rec.ID = l.nextID
	l.nextID++

	d := store.AccessRecordDetail{AccessRecord: rec}
	if t, err := l.refs.TurnstileByID(ctx, rec.TurnstileID); err == nil {
		d.TurnstileName = t.Name
		d.TurnstileLocation = t.Location
	}
	if rec.EmployeeID != nil {
		if e, ok := l.employeeByID(*rec.EmployeeID); ok {
			d.FullName = &e.FullName
			d.Position = &e.Position
			d.Department = &e.Department
		}
	}

	l.records = append(l.records, d)
	return rec.ID, nil
}

func (l *AuditLedger) Recent(_ context.Context, limit int) ([]store.AccessRecordDetail, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.records) {
		limit = len(l.records)
	}

	// Appends keep timestamps non-decreasing and ids increasing, so newest
	// first is simply reverse insertion order.
	out := make([]store.AccessRecordDetail, 0, limit)
	for i := len(l.records) - 1; i >= len(l.records)-limit; i-- {
		out = append(out, l.records[i])
	}
	return out, nil
}

// Records returns a copy of every appended record in insertion order.
// Test-only helper.
func (l *AuditLedger) Records() []store.AccessRecordDetail {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]store.AccessRecordDetail, len(l.records))
	copy(out, l.records)
	return out
}

func (l *AuditLedger) employeeByID(id int64) (store.Employee, bool) {
	for _, e := range l.refs.byBadge {
		if e.ID == id {
			return e, true
		}
	}
	return store.Employee{}, false
}
